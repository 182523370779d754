package room

import "errors"

var (
	ErrInvalidCapacity = errors.New("room capacity must be at least one")
	ErrNegativePrice   = errors.New("room price cannot be negative")
	ErrEmptyName       = errors.New("room name is required")
)

// Room is a bookable unit. Rooms are owned by the admin surface; the
// booking core only reads them.
type Room struct {
	id          int64
	name        string
	roomType    string
	priceCents  int64
	capacity    int
	isAvailable bool
}

func NewRoom(id int64, name, roomType string, priceCents int64, capacity int, isAvailable bool) (*Room, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if priceCents < 0 {
		return nil, ErrNegativePrice
	}
	if capacity < 1 {
		return nil, ErrInvalidCapacity
	}
	return &Room{
		id:          id,
		name:        name,
		roomType:    roomType,
		priceCents:  priceCents,
		capacity:    capacity,
		isAvailable: isAvailable,
	}, nil
}

func (r *Room) ID() int64         { return r.id }
func (r *Room) Name() string      { return r.name }
func (r *Room) RoomType() string  { return r.roomType }
func (r *Room) PriceCents() int64 { return r.priceCents }
func (r *Room) Capacity() int     { return r.capacity }

// IsAvailable is the administrative on/off switch, independent of bookings.
func (r *Room) IsAvailable() bool { return r.isAvailable }

func (r *Room) Fits(guests int) bool {
	return guests >= 1 && guests <= r.capacity
}
