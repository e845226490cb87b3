package services

import (
	"strings"

	"gorm.io/gorm"

	"github.com/davinpratama/resto-ops/models"
	"github.com/davinpratama/resto-ops/utils"
)

// ChatbotService adalah FAQ bot berbasis aturan: pesan dicocokkan dengan
// keyword-containment berurutan, aturan pertama yang cocok menang.
// Pertanyaan harga menu dijawab dari katalog live.
type ChatbotService struct {
	DB    *gorm.DB
	rules []ChatRule
}

type ChatRule struct {
	Keywords []string
	Reply    string
}

const chatbotFallback = "Maaf, saya belum mengerti pertanyaan Anda. " +
	"Silakan tanya soal jam buka, lokasi, reservasi, menu, atau pembayaran."

func defaultChatRules() []ChatRule {
	return []ChatRule{
		{
			Keywords: []string{"jam buka", "buka jam", "opening hours", "open"},
			Reply:    "Kami buka setiap hari pukul 10.00 - 22.00 WIB.",
		},
		{
			Keywords: []string{"lokasi", "alamat", "location", "address"},
			Reply:    "Kami berada di Jl. Kenanga No. 12, Jakarta Selatan. Lantai 1, Lantai 2, dan Rooftop tersedia.",
		},
		{
			Keywords: []string{"reservasi", "booking", "book", "pesan meja"},
			Reply:    "Reservasi meja bisa dilakukan lewat halaman Booking: pilih lantai, jumlah tamu, tanggal, dan slot waktu.",
		},
		{
			Keywords: []string{"bayar", "payment", "qris", "pembayaran"},
			Reply:    "Kami menerima pembayaran tunai di kasir dan QRIS.",
		},
		{
			Keywords: []string{"menu", "makanan", "minuman", "rekomendasi"},
			Reply:    "Menu lengkap ada di halaman Menu. Silakan tanya harga menu tertentu, misalnya: \"harga nasi goreng\".",
		},
		{
			Keywords: []string{"kontak", "telepon", "contact", "phone"},
			Reply:    "Hubungi kami di (021) 555-0123 atau WhatsApp 0812-3456-7890.",
		},
	}
}

func NewChatbotService(db *gorm.DB) *ChatbotService {
	return &ChatbotService{
		DB:    db,
		rules: defaultChatRules(),
	}
}

// Answer mengembalikan jawaban kalengan untuk satu pesan.
func (cs *ChatbotService) Answer(message string) string {
	msg := strings.ToLower(strings.TrimSpace(message))
	if msg == "" {
		return chatbotFallback
	}

	// Pertanyaan harga dicek lebih dulu karena jawabannya dinamis
	if strings.Contains(msg, "harga") || strings.Contains(msg, "price") {
		if reply, ok := cs.answerMenuPrice(msg); ok {
			return reply
		}
	}

	for _, rule := range cs.rules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(msg, keyword) {
				return rule.Reply
			}
		}
	}

	return chatbotFallback
}

// answerMenuPrice mencari nama menu yang disebut dalam pesan dan menjawab
// dengan harga terkini dari katalog.
func (cs *ChatbotService) answerMenuPrice(msg string) (string, bool) {
	var menus []models.Menu
	if err := cs.DB.Where("available = ?", true).Find(&menus).Error; err != nil {
		return "", false
	}

	for _, menu := range menus {
		if strings.Contains(msg, strings.ToLower(menu.Name)) {
			return "Harga " + menu.Name + " saat ini " + utils.FormatCurrencyIDR(menu.Price) + ".", true
		}
	}
	return "", false
}
