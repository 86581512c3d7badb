package domain

import "time"

type Customer struct {
	ID        int32     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedOn time.Time `json:"created_on"`
}
