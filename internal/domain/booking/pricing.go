package booking

// Pricing is fixed, not configurable per booking: the service fee and tax
// are percentages of the room subtotal only.
const (
	ServiceFeePercent = 5
	TaxPercent        = 10
)

// Quote is the price breakdown for a stay.
type Quote struct {
	Nights     int
	RoomTotal  Money
	ServiceFee Money
	Tax        Money
	Discount   Money
	Total      Money
}

// ComputeQuote prices a stay:
//
//	roomTotal  = pricePerNight * nights
//	serviceFee = roomTotal * 5%
//	tax        = roomTotal * 10%
//	total      = roomTotal + serviceFee + tax - discount
func ComputeQuote(pricePerNight Money, stay StayPeriod, discount Money) Quote {
	nights := stay.Nights()
	roomTotal := pricePerNight.MulNights(nights)
	serviceFee := roomTotal.Percent(ServiceFeePercent)
	tax := roomTotal.Percent(TaxPercent)
	total := roomTotal.Add(serviceFee).Add(tax).Sub(discount)

	return Quote{
		Nights:     nights,
		RoomTotal:  roomTotal,
		ServiceFee: serviceFee,
		Tax:        tax,
		Discount:   discount,
		Total:      total,
	}
}
