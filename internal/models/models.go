package models

import (
	"time"

	"github.com/lib/pq"
)

// Perks a place can advertise.
const (
	PerkWifi     = "wifi"
	PerkParking  = "parking"
	PerkTV       = "tv"
	PerkRadio    = "radio"
	PerkPets     = "pets"
	PerkEntrance = "entrance"
)

// Perks lists every perk in display order.
var Perks = []string{PerkWifi, PerkParking, PerkTV, PerkRadio, PerkPets, PerkEntrance}

func IsPerk(s string) bool {
	for _, p := range Perks {
		if p == s {
			return true
		}
	}
	return false
}

type User struct {
	UserID       string    `json:"_id" db:"user_id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"-" db:"created_at"`
}

type Place struct {
	PlaceID     string         `json:"_id" db:"place_id"`
	OwnerID     string         `json:"owner" db:"owner_id"`
	Title       string         `json:"title" db:"title"`
	Address     string         `json:"address" db:"address"`
	Photos      pq.StringArray `json:"photos" db:"photos"`
	Description string         `json:"description" db:"description"`
	Perks       pq.StringArray `json:"perks" db:"perks"`
	ExtraInfo   string         `json:"extraInfo" db:"extra_info"`
	CheckIn     string         `json:"checkIn" db:"check_in"`
	CheckOut    string         `json:"checkOut" db:"check_out"`
	MaxGuests   int            `json:"maxGuests" db:"max_guests"`
	Price       float64        `json:"price" db:"price"`
	CreatedAt   time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time      `json:"updatedAt" db:"updated_at"`
}

type Booking struct {
	BookingID      string    `json:"_id" db:"booking_id"`
	PlaceID        string    `json:"-" db:"place_id"`
	UserID         string    `json:"user" db:"user_id"`
	CheckIn        time.Time `json:"checkIn" db:"check_in"`
	CheckOut       time.Time `json:"checkOut" db:"check_out"`
	Name           string    `json:"name" db:"name"`
	Mobile         string    `json:"mobile" db:"mobile"`
	NumberOfGuests int       `json:"numberOfGuests" db:"number_of_guests"`
	Price          float64   `json:"price" db:"price"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	Place          *Place    `json:"place" db:"-"`
}

// Nights is the number of whole nights between check-in and check-out.
func (b *Booking) Nights() int {
	return int(b.CheckOut.Sub(b.CheckIn).Hours() / 24)
}
