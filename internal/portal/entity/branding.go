package entity

import "time"

// Branding 系统品牌配置，单行记录
type Branding struct {
	ID             string    `json:"id" gorm:"primaryKey;size:32"`
	SystemName     string    `json:"system_name" gorm:"size:100;not null"`
	LogoURL        string    `json:"logo_url" gorm:"size:512"`
	PrimaryColor   string    `json:"primary_color" gorm:"size:20"`
	SecondaryColor string    `json:"secondary_color" gorm:"size:20"`
	AccentColor    string    `json:"accent_color" gorm:"size:20"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (Branding) TableName() string {
	return "vv_branding"
}

// BrandingID 品牌配置固定主键
const BrandingID = "default"

// DefaultBranding 默认品牌配置
func DefaultBranding() *Branding {
	return &Branding{
		ID:             BrandingID,
		SystemName:     "VendorValuate",
		PrimaryColor:   "#0f6cbd",
		SecondaryColor: "#002b50",
		AccentColor:    "#2563eb",
	}
}
