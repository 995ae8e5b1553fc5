package domain

type Address struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Province   string `gorm:"size:128;not null" json:"province"`
	ProvinceID int    `gorm:"not null" json:"provinceId"`
	District   string `gorm:"size:128;not null" json:"district"`
	DistrictID int    `gorm:"not null" json:"districtId"`
	Ward       string `gorm:"size:128;not null" json:"ward"`
	WardID     int    `gorm:"not null" json:"wardId"`
	Address    string `gorm:"size:512;not null" json:"address"`
	Country    string `gorm:"size:128;not null" json:"country"`
	Zip        string `gorm:"size:16;not null" json:"zip"`
	UserID     uint   `gorm:"index;not null" json:"userId"`
	IsDefault  bool   `gorm:"not null;default:false" json:"isDefault"`
	Audit
}
