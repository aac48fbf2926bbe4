package models

import "custodia/pkg/domain"

// Portrait is the single customer photo. At most one row per customer;
// creating a new one replaces any prior state by upsert.
type Portrait struct {
	CustomerID  domain.CustomerID
	Image       []byte
	ContentType string
	Size        int64
}
