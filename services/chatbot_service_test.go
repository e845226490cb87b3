package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/davinpratama/resto-ops/models"
)

func TestChatbotAnswersKnownTopics(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewChatbotService(db)

	cases := []struct {
		message  string
		expected string
	}{
		{"Jam buka restorannya kapan ya?", "Kami buka setiap hari pukul 10.00 - 22.00 WIB."},
		{"What are your OPENING HOURS?", "Kami buka setiap hari pukul 10.00 - 22.00 WIB."},
		{"dimana lokasi restoran?", "Kami berada di Jl. Kenanga No. 12, Jakarta Selatan. Lantai 1, Lantai 2, dan Rooftop tersedia."},
		{"mau reservasi meja dong", "Reservasi meja bisa dilakukan lewat halaman Booking: pilih lantai, jumlah tamu, tanggal, dan slot waktu."},
		{"bisa bayar pakai qris?", "Kami menerima pembayaran tunai di kasir dan QRIS."},
		{"nomor telepon restoran berapa?", "Hubungi kami di (021) 555-0123 atau WhatsApp 0812-3456-7890."},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.expected, svc.Answer(tc.message), "message: %s", tc.message)
	}
}

func TestChatbotFallback(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewChatbotService(db)

	assert.Equal(t, chatbotFallback, svc.Answer("apakah kalian menjual saham?"))
	assert.Equal(t, chatbotFallback, svc.Answer(""))
	assert.Equal(t, chatbotFallback, svc.Answer("   "))
}

func TestChatbotMenuPriceLookup(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewChatbotService(db)

	seedMenu(t, db, "Nasi Goreng", 50000)

	// Menu nonaktif tidak boleh disebut
	hidden := seedMenu(t, db, "Menu Rahasia", 99000)
	db.Model(&models.Menu{}).Where("id = ?", hidden.ID).Update("available", false)

	reply := svc.Answer("berapa harga nasi goreng?")
	assert.Contains(t, reply, "Nasi Goreng")
	assert.Contains(t, reply, "Rp 50.000")

	reply = svc.Answer("harga menu rahasia berapa?")
	assert.NotContains(t, reply, "99.000")

	// "harga" tanpa nama menu yang dikenal jatuh ke aturan keyword biasa
	reply = svc.Answer("harga menu di sini gimana?")
	assert.Contains(t, reply, "Menu lengkap")
}
