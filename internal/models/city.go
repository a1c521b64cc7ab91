package models

import (
	"time"
)

type City struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"size:120;uniqueIndex;not null" json:"name"`
	Sponsors  []Sponsor `gorm:"many2many:sponsor_cities;" json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (City) TableName() string {
	return "cities"
}
