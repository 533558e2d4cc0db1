package models

import (
	"time"

	"github.com/dgrijalva/jwt-go"
)

const (
	RoleCustomer = "customer"
	RoleExecutor = "executor"
	RoleOwner    = "owner"
	RoleAdmin    = "admin"
)

type User struct {
	ID        int        `json:"id"`
	Username  string     `json:"username,omitempty"`
	FullName  string     `json:"full_name"`
	Phone     string     `json:"phone,omitempty"`
	Password  string     `json:"password,omitempty"`
	Role      string     `json:"role"`
	Rating    float64    `json:"rating"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func (u *User) IsExecutor() bool {
	return u.Role == RoleExecutor
}

func (u *User) IsCustomer() bool {
	return u.Role == RoleCustomer
}

type ExecutorProfile struct {
	ID              int        `json:"id"`
	UserID          int        `json:"user_id"`
	CompanyName     *string    `json:"company_name,omitempty"`
	Phone           *string    `json:"phone,omitempty"`
	Description     *string    `json:"description,omitempty"`
	ExperienceYears int        `json:"experience_years"`
	LicenseNumber   *string    `json:"license_number,omitempty"`
	InsuranceInfo   *string    `json:"insurance_info,omitempty"`
	WorkRadiusKm    int        `json:"work_radius_km"`
	MinPrice        *int       `json:"min_price,omitempty"`
	MaxPrice        *int       `json:"max_price,omitempty"`
	ServiceFilter   *string    `json:"service_filter,omitempty"`
	LocationText    *string    `json:"location_text,omitempty"`
	Latitude        *float64   `json:"latitude,omitempty"`
	Longitude       *float64   `json:"longitude,omitempty"`
	IsVerified      bool       `json:"is_verified"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`

	// Joined from users
	Username *string  `json:"username,omitempty"`
	FullName *string  `json:"full_name,omitempty"`
	Rating   *float64 `json:"user_rating,omitempty"`
}

// IsComplete reports whether the profile has the fields shown to customers.
func (p *ExecutorProfile) IsComplete() bool {
	return p.CompanyName != nil && *p.CompanyName != "" &&
		p.Phone != nil && *p.Phone != "" &&
		p.Description != nil && *p.Description != ""
}

// ExecutorProfilePatch enumerates the updatable profile fields. Only non-nil
// fields make it into the UPDATE statement.
type ExecutorProfilePatch struct {
	CompanyName     *string  `json:"company_name,omitempty"`
	Phone           *string  `json:"phone,omitempty"`
	Description     *string  `json:"description,omitempty"`
	ExperienceYears *int     `json:"experience_years,omitempty"`
	LicenseNumber   *string  `json:"license_number,omitempty"`
	InsuranceInfo   *string  `json:"insurance_info,omitempty"`
	WorkRadiusKm    *int     `json:"work_radius_km,omitempty"`
	MinPrice        *int     `json:"min_price,omitempty"`
	MaxPrice        *int     `json:"max_price,omitempty"`
	ServiceFilter   *string  `json:"service_filter,omitempty"`
	LocationText    *string  `json:"location_text,omitempty"`
	Latitude        *float64 `json:"latitude,omitempty"`
	Longitude       *float64 `json:"longitude,omitempty"`
}

type UserStats struct {
	User            User    `json:"user"`
	OrdersCount     int     `json:"orders_count"`
	OffersCount     int     `json:"offers_count"`
	CompletedOrders int     `json:"completed_orders"`
	AverageRating   float64 `json:"average_rating"`
}

type Claims struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
	jwt.StandardClaims
}

type Tokens struct {
	AccessToken  string
	RefreshToken string
}

type Session struct {
	UserID       int       `json:"user_id"`
	Role         string    `json:"role"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

type SignUpRequest struct {
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type SignInRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}
