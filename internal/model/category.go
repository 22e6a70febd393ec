package model

import "time"

type Category struct {
	Type      string
	Color     string
	CreatedAt time.Time
}
