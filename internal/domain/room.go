package domain

// Room is a backend-owned record; the client never mutates it, only renders it.
type Room struct {
	ID            string  `json:"id"`
	RoomType      string  `json:"roomType"`
	PricePerNight float64 `json:"pricePerNight"`
	Capacity      int     `json:"capacity"`
	Description   string  `json:"description"`
	PhotoURL      string  `json:"photoUrl"`
}

// RoomFilter carries the optional search criteria. Zero values mean
// "no filter"; the backend owns the actual availability decision.
type RoomFilter struct {
	CheckInDate  string
	CheckOutDate string
	RoomType     string
}

func (f RoomFilter) Empty() bool {
	return f.CheckInDate == "" && f.CheckOutDate == "" && f.RoomType == ""
}
