package domain

import "time"

// UserToken binds an issued access/refresh token pair to a login session.
// At most one record exists per (user, access token); re-login with an
// identical token updates the record in place instead of duplicating it.
type UserToken struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"index;not null" json:"userId"`
	MobilePhone  string    `gorm:"size:32" json:"mobilePhone"`
	AccessToken  string    `gorm:"type:text;not null" json:"accessToken"`
	RefreshToken string    `gorm:"type:text;not null" json:"refreshToken"`
	TokenType    string    `gorm:"size:32" json:"tokenType"`
	ExpiresAt    time.Time `gorm:"index;not null" json:"expiresAt"`
	Audit
}
