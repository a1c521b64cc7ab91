package models

import (
	"encoding/json"
	"time"
)

type Restaurant struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	OfficialName   string    `gorm:"size:150;not null" json:"officialName"`
	DisplayName    string    `gorm:"size:150;not null" json:"displayName"`
	Description    string    `gorm:"type:text" json:"description,omitempty"`
	Representative string    `gorm:"size:150" json:"representative,omitempty"`
	TableCount     *int      `json:"tableCount,omitempty"`
	CityID         *uint     `gorm:"index" json:"cityId,omitempty"`
	City           *City     `gorm:"foreignKey:CityID" json:"-"`
	Phone          string    `gorm:"size:40" json:"phone,omitempty"`
	Email          string    `gorm:"size:150" json:"email,omitempty"`
	Website        string    `gorm:"size:255" json:"website,omitempty"`
	Address        string    `gorm:"size:255" json:"address,omitempty"`
	Sedes          string    `gorm:"type:text" json:"-"`
	Proposals      string    `gorm:"type:text" json:"proposals,omitempty"`
	Editions       string    `gorm:"type:text" json:"editions,omitempty"`
	Awards         string    `gorm:"type:text" json:"awards,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (Restaurant) TableName() string {
	return "restaurants"
}

// RestaurantView denormalizes the joined city name and re-exposes the stored
// branch list (sedes) as the JSON it was submitted with.
type RestaurantView struct {
	ID             uint            `json:"id"`
	OfficialName   string          `json:"officialName"`
	DisplayName    string          `json:"displayName"`
	Description    string          `json:"description,omitempty"`
	Representative string          `json:"representative,omitempty"`
	TableCount     *int            `json:"tableCount,omitempty"`
	CityID         *uint           `json:"cityId,omitempty"`
	CityName       string          `json:"cityName,omitempty"`
	Phone          string          `json:"phone,omitempty"`
	Email          string          `json:"email,omitempty"`
	Website        string          `json:"website,omitempty"`
	Address        string          `json:"address,omitempty"`
	Sedes          json.RawMessage `json:"sedes,omitempty"`
	Proposals      string          `json:"proposals,omitempty"`
	Editions       string          `json:"editions,omitempty"`
	Awards         string          `json:"awards,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

func (r *Restaurant) View() RestaurantView {
	view := RestaurantView{
		ID:             r.ID,
		OfficialName:   r.OfficialName,
		DisplayName:    r.DisplayName,
		Description:    r.Description,
		Representative: r.Representative,
		TableCount:     r.TableCount,
		CityID:         r.CityID,
		Phone:          r.Phone,
		Email:          r.Email,
		Website:        r.Website,
		Address:        r.Address,
		Proposals:      r.Proposals,
		Editions:       r.Editions,
		Awards:         r.Awards,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
	if r.City != nil {
		view.CityName = r.City.Name
	}
	if r.Sedes != "" {
		view.Sedes = json.RawMessage(r.Sedes)
	}
	return view
}

func RestaurantViews(restaurants []Restaurant) []RestaurantView {
	views := make([]RestaurantView, 0, len(restaurants))
	for i := range restaurants {
		views = append(views, restaurants[i].View())
	}
	return views
}
