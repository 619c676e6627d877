package entity

import "time"

// Vendor 供应商
type Vendor struct {
	ID           string    `json:"id" gorm:"primaryKey;size:32"`
	VendorName   string    `json:"vendor_name" gorm:"size:200;not null;index"`
	VendorType   string    `json:"vendor_type" gorm:"size:50;not null;index"`
	ContactEmail string    `json:"contact_email" gorm:"size:128"`
	Status       string    `json:"status" gorm:"size:20;not null;default:Active"` // Active/Inactive
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Vendor) TableName() string {
	return "vv_vendors"
}

// 供应商类型
const (
	VendorTypeTransport          = "Transport"
	VendorTypeManpowerSupply     = "Manpower Supply"
	VendorTypeMachineMaintenance = "Machine Maintenance"
	VendorTypeGoodsSupply        = "Goods Supply"
)

// VendorTypes 全部合法供应商类型
var VendorTypes = []string{
	VendorTypeTransport,
	VendorTypeManpowerSupply,
	VendorTypeMachineMaintenance,
	VendorTypeGoodsSupply,
}

// IsValidVendorType 校验供应商类型
func IsValidVendorType(t string) bool {
	for _, v := range VendorTypes {
		if v == t {
			return true
		}
	}
	return false
}

// 供应商状态
const (
	VendorStatusActive   = "Active"
	VendorStatusInactive = "Inactive"
)
