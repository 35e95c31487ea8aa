package notifications

// EventReservationBooked fires once a booking transaction has committed.
const EventReservationBooked = "reservation.booked"

// ReservationBookedEvent is the payload delivered to every handler
// registered for EventReservationBooked, and the message body persisted
// on the notification stream.
type ReservationBookedEvent struct {
	PassengerEmail string `json:"passenger_email"`
	PassengerName  string `json:"passenger_name"`
	FlightID       uint   `json:"flight_id"`
	Departure      string `json:"departure"`
	DepartureTime  string `json:"departure_time"`
}
