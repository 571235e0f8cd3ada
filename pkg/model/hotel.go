package model

import (
	"time"
)

// Hotel is the inventory aggregate root. It exclusively owns the nested
// category → room → booking structure; rooms have no identity outside their
// parent document and are addressed by (hotelID, categoryName, roomName).
type Hotel struct {
	ID               string         `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	HotelID          int            `json:"hotelID" bson:"hotelID"`
	HotelName        string         `json:"hotelName" bson:"hotelName" validate:"required"`
	HotelDescription string         `json:"hotelDescription" bson:"hotelDescription" validate:"required"`
	RoomCategories   []RoomCategory `json:"roomCategories" bson:"roomCategories"`
	CreateTime       time.Time      `json:"createTime" bson:"createTime"`
	CreatedAt        time.Time      `json:"createdAt" bson:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt" bson:"updatedAt"`
}

// RoomCategory groups rooms under a name; mutation paths look categories up
// by exact name, not by ID.
type RoomCategory struct {
	Name        string       `json:"name" bson:"name" validate:"required"`
	RoomNumbers []RoomNumber `json:"roomNumbers" bson:"roomNumbers"`
}

// RoomNumber carries the per-room booking state. BookedDates may hold
// duplicates; nothing here prevents double booking (caller responsibility).
type RoomNumber struct {
	Name        string        `json:"name" bson:"name" validate:"required"`
	BookedDates []string      `json:"bookedDates" bson:"bookedDates"`
	Bookings    []RoomBooking `json:"bookings" bson:"bookings"`
	Status      string        `json:"status,omitempty" bson:"status,omitempty"`
}

// RoomBooking is the embedded reservation entry a room keeps alongside the
// flat Booking record.
type RoomBooking struct {
	GuestName      string             `json:"guestName,omitempty" bson:"guestName,omitempty"`
	CheckIn        time.Time          `json:"checkIn,omitempty" bson:"checkIn,omitempty"`
	CheckOut       time.Time          `json:"checkOut,omitempty" bson:"checkOut,omitempty"`
	BookedBy       string             `json:"bookedBy,omitempty" bson:"bookedBy,omitempty"`
	PaymentDetails RoomBookingPayment `json:"paymentDetails,omitempty" bson:"paymentDetails,omitempty"`
}

type RoomBookingPayment struct {
	TotalBill      float64 `json:"totalBill,omitempty" bson:"totalBill,omitempty"`
	AdvancePayment float64 `json:"advancePayment,omitempty" bson:"advancePayment,omitempty"`
	DuePayment     float64 `json:"duePayment,omitempty" bson:"duePayment,omitempty"`
	PaymentMethod  string  `json:"paymentMethod,omitempty" bson:"paymentMethod,omitempty"`
	TransactionID  string  `json:"transactionId,omitempty" bson:"transactionId,omitempty"`
}

// RoomStatusUpdate is one (roomName, status) pair for the bulk status
// operation; pairs naming unknown rooms are skipped without error.
type RoomStatusUpdate struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}
