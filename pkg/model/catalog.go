package model

import (
	"time"
)

// HotelCategory and RoomType are independent lookup collections with a
// sequential numeric id assigned at creation. Service and Portfolio have no
// numeric id. All four share the same create / list / update / hard-delete
// lifecycle.

type HotelCategory struct {
	ID          string    `json:"_id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	SeqID       int       `json:"id" bson:"id"`
	Name        string    `json:"name" bson:"name" validate:"required"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	CreateTime  time.Time `json:"createTime" bson:"createTime"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}

type RoomType struct {
	ID          string    `json:"_id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	SeqID       int       `json:"id" bson:"id"`
	Name        string    `json:"name" bson:"name" validate:"required"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	CreateTime  time.Time `json:"createTime" bson:"createTime"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}

type Service struct {
	ID        string           `json:"_id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Image     string           `json:"image" bson:"image" validate:"required"`
	Title     string           `json:"title" bson:"title" validate:"required"`
	Packages  []ServicePackage `json:"packages" bson:"packages" validate:"dive"`
	CreatedAt time.Time        `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt" bson:"updatedAt"`
}

type ServicePackage struct {
	Name     string                 `json:"name" bson:"name" validate:"required"`
	Details  []ServicePackageDetail `json:"details" bson:"details" validate:"dive"`
	Price    float64                `json:"price" bson:"price"`
	Discount float64                `json:"discount" bson:"discount"`
}

type ServicePackageDetail struct {
	SubDetails string `json:"subDetails" bson:"subDetails" validate:"required"`
}

type Portfolio struct {
	ID        string    `json:"_id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Image     string    `json:"image" bson:"image" validate:"required"`
	Title     string    `json:"title" bson:"title" validate:"required"`
	Details   string    `json:"details,omitempty" bson:"details,omitempty"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}
