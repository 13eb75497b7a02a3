package api

import "time"

// SignupRequest mirrors the /early-start/signup body.
type SignupRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

// SignupResponse mirrors the /early-start/signup payload. OTP is only
// populated by a development backend and only kept in dev mode.
type SignupResponse struct {
	Message string `json:"message"`
	OTP     string `json:"otp,omitempty"`
}

type verifyRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// VerifyResponse mirrors the /early-start/verify payload.
type VerifyResponse struct {
	Message    string `json:"message"`
	Status     string `json:"status,omitempty"`
	Email      string `json:"email,omitempty"`
	IsVerified bool   `json:"isVerified"`
}

// Count mirrors /early-start/count.
type Count struct {
	Total    int64 `json:"total"`
	Verified int64 `json:"verified"`
}

// Signup is one row of the admin listing.
type Signup struct {
	ID            uint       `json:"id"`
	Email         string     `json:"email"`
	FirstName     string     `json:"firstName,omitempty"`
	LastName      string     `json:"lastName,omitempty"`
	IsVerified    bool       `json:"isVerified"`
	EmailSent     bool       `json:"emailSent"`
	ReadCount     int        `json:"readCount"`
	CreatedAt     time.Time  `json:"createdAt"`
	OTPVerifiedAt *time.Time `json:"otpVerifiedAt,omitempty"`
}

// Pagination describes a page of the admin listing.
type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

// SignupList mirrors /admin/early-start. Older backends report pagination
// fields at the top level; normalize folds them into Pagination.
type SignupList struct {
	Users      []Signup   `json:"users"`
	Pagination Pagination `json:"pagination"`

	Total int64 `json:"total,omitempty"`
	Page  int   `json:"page,omitempty"`
	Limit int   `json:"limit,omitempty"`
}

func (l *SignupList) normalize() {
	if l.Pagination.Total == 0 {
		l.Pagination.Total = l.Total
	}
	if l.Pagination.Page == 0 {
		l.Pagination.Page = l.Page
	}
	if l.Pagination.Limit == 0 {
		l.Pagination.Limit = l.Limit
	}
	if l.Pagination.Total == 0 {
		l.Pagination.Total = int64(len(l.Users))
	}
}

type errorResponse struct {
	Error string `json:"error"`
}
