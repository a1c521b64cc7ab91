package models

import (
	"time"
)

type Sponsor struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	Name           string    `gorm:"size:150;not null" json:"name"`
	Email          string    `gorm:"size:150;uniqueIndex;not null" json:"email"`
	Phone          string    `gorm:"size:40" json:"phone,omitempty"`
	Representative string    `gorm:"size:150" json:"representative,omitempty"`
	LogoLight      string    `gorm:"size:255" json:"logoLight,omitempty"`
	LogoDark       string    `gorm:"size:255" json:"logoDark,omitempty"`
	Cities         []City    `gorm:"many2many:sponsor_cities;" json:"-"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (Sponsor) TableName() string {
	return "sponsors"
}

// SponsorView is the wire shape for sponsor reads: the sponsor plus its
// associated cities flattened into two parallel lists. CityIDs and CityNames
// are always non-nil so clients receive [] rather than null.
type SponsorView struct {
	ID             uint      `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone,omitempty"`
	Representative string    `json:"representative,omitempty"`
	LogoLight      string    `json:"logoLight,omitempty"`
	LogoDark       string    `json:"logoDark,omitempty"`
	CityIDs        []uint    `json:"cityIds"`
	CityNames      []string  `json:"cityNames"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// View flattens the preloaded Cities association. The nth name always
// belongs to the nth id.
func (s *Sponsor) View() SponsorView {
	cityIDs := make([]uint, 0, len(s.Cities))
	cityNames := make([]string, 0, len(s.Cities))
	for _, city := range s.Cities {
		cityIDs = append(cityIDs, city.ID)
		cityNames = append(cityNames, city.Name)
	}

	return SponsorView{
		ID:             s.ID,
		Name:           s.Name,
		Email:          s.Email,
		Phone:          s.Phone,
		Representative: s.Representative,
		LogoLight:      s.LogoLight,
		LogoDark:       s.LogoDark,
		CityIDs:        cityIDs,
		CityNames:      cityNames,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

func SponsorViews(sponsors []Sponsor) []SponsorView {
	views := make([]SponsorView, 0, len(sponsors))
	for i := range sponsors {
		views = append(views, sponsors[i].View())
	}
	return views
}
