// Package seatdata fetches seat availability for a trip from the booking
// backend.
//
// # Wire Contract
//
// A fetch is keyed by trip, bus model and departure date:
//
//	GET {base}/trips/{tripId}/seats?bus_type={model}&departure_date={YYYY-MM-DD}
//
// and the backend answers with
//
//	{
//	  "seats": [{"seat_number": 1, "status": "free"}, ...],
//	  "base_capacity": 35,
//	  "additional_capacity": 3,
//	  "total_capacity": 38
//	}
//
// Capacity fields are optional. Each missing field defaults on its own:
// base to 35, additional to 0, total to base+additional.
//
// # Missing Keys
//
// [Client.FetchSeats] never issues a request for an incomplete [Key]; it
// returns [ErrIncompleteKey] so callers can show an "unavailable" state
// instead of an empty layout.
package seatdata
