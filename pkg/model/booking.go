package model

import (
	"time"
)

// Booking is one flat room-night reservation record. Records that belong to
// the same guest stay share a BookingNo; SerialNo is a global counter
// assigned once per record regardless of grouping.
//
// Payment amounts and Nights are pointers so that an explicit zero (a fully
// paid stay, a day-use booking) passes the required check while an absent
// field does not.
type Booking struct {
	ID               string     `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	FullName         string     `json:"fullName" bson:"fullName" validate:"required"`
	NIDPassport      string     `json:"nidPassport,omitempty" bson:"nidPassport,omitempty"`
	Address          string     `json:"address,omitempty" bson:"address,omitempty"`
	Phone            string     `json:"phone" bson:"phone" validate:"required"`
	Email            string     `json:"email,omitempty" bson:"email,omitempty" validate:"omitempty,email"`
	HotelName        string     `json:"hotelName" bson:"hotelName" validate:"required"`
	HotelID          int        `json:"hotelID" bson:"hotelID"`
	RoomCategoryID   string     `json:"roomCategoryID" bson:"roomCategoryID" validate:"required"`
	RoomCategoryName string     `json:"roomCategoryName" bson:"roomCategoryName" validate:"required"`
	RoomNumberID     string     `json:"roomNumberID" bson:"roomNumberID" validate:"required"`
	RoomNumberName   string     `json:"roomNumberName" bson:"roomNumberName" validate:"required"`
	RoomPrice        *float64   `json:"roomPrice" bson:"roomPrice" validate:"required"`
	CheckInDate      time.Time  `json:"checkInDate" bson:"checkInDate" validate:"required"`
	CheckOutDate     time.Time  `json:"checkOutDate" bson:"checkOutDate" validate:"required"`
	Nights           *int       `json:"nights" bson:"nights" validate:"required"`
	Adults           int        `json:"adults,omitempty" bson:"adults,omitempty"`
	Children         int        `json:"children,omitempty" bson:"children,omitempty"`
	TotalBill        *float64   `json:"totalBill" bson:"totalBill" validate:"required"`
	AdvancePayment   *float64   `json:"advancePayment" bson:"advancePayment" validate:"required"`
	DuePayment       *float64   `json:"duePayment" bson:"duePayment" validate:"required"`
	PaymentMethod    string     `json:"paymentMethod,omitempty" bson:"paymentMethod,omitempty"`
	TransactionID    string     `json:"transactionId" bson:"transactionId" validate:"required"`
	Note             string     `json:"note,omitempty" bson:"note,omitempty"`
	IsKitchen        bool       `json:"isKitchen,omitempty" bson:"isKitchen,omitempty"`
	BookedBy         string     `json:"bookedBy" bson:"bookedBy" validate:"required"`
	BookedByID       string     `json:"bookedByID" bson:"bookedByID" validate:"required"`
	UpdatedByID      string     `json:"updatedByID,omitempty" bson:"updatedByID,omitempty"`
	BookingID        string     `json:"bookingID" bson:"bookingID" validate:"required"`
	BookingNo        string     `json:"bookingNo" bson:"bookingNo" validate:"required"`
	SerialNo         int        `json:"serialNo" bson:"serialNo"`
	Reference        string     `json:"reference,omitempty" bson:"reference,omitempty"`
	CreateTime       time.Time  `json:"createTime" bson:"createTime"`
	StatusID         int        `json:"statusID" bson:"statusID"`
	CanceledBy       string     `json:"canceledBy,omitempty" bson:"canceledBy,omitempty"`
	CreatedAt        time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt" bson:"updatedAt"`
}

const (
	// BookingStatusActive is the default lifecycle state.
	BookingStatusActive = 1
	// BookingStatusCancelled marks a soft-cancelled record; cancelled
	// bookings stay in the collection and in listings.
	BookingStatusCancelled = 255
)
