package services

import "fmt"

// Kondisi bisnis yang diharapkan dikembalikan sebagai nilai error
// bertipe, bukan panic. Controller memetakan tipe-tipe ini ke kode HTTP.

// NotFoundError -> table/booking/order/menu yang dirujuk tidak ada
type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string {
	if e.ID == 0 {
		return fmt.Sprintf("%s not found", e.Entity)
	}
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// CapacityExceededError -> jumlah tamu melebihi kapasitas meja
type CapacityExceededError struct {
	TableID   uint
	Capacity  int
	PartySize int
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("party of %d exceeds table %d capacity of %d",
		e.PartySize, e.TableID, e.Capacity)
}

// SlotConflictError -> meja sudah dibooking untuk tanggal/slot tersebut
type SlotConflictError struct {
	TableID  uint
	Date     string
	TimeSlot string
}

func (e *SlotConflictError) Error() string {
	return fmt.Sprintf("table %d is already booked for %s %s",
		e.TableID, e.Date, e.TimeSlot)
}

// PreconditionError -> operasi tidak diizinkan pada state sekarang
type PreconditionError struct {
	Message string
}

func (e *PreconditionError) Error() string {
	return e.Message
}
