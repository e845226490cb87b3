package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Store menyimpan data formulir booking yang sedang berjalan di Redis,
// dikunci token sesi browser. Ini menggantikan state sesi ambient: data
// transient antar halaman disimpan eksplisit di sini dengan TTL.
type Store struct {
	rdb *redis.Client
}

// ErrDraftNotFound -> token tidak punya draft tersimpan (atau kadaluarsa)
var ErrDraftNotFound = errors.New("booking draft not found")

// DraftTTL adalah umur draft booking; satu sesi browser, bukan umur proses.
const DraftTTL = 30 * time.Minute

// BookingDraft adalah isi formulir booking yang belum dikirim.
type BookingDraft struct {
	CustomerName string      `json:"customer_name"`
	Phone        string      `json:"phone"`
	BookingDate  string      `json:"booking_date"`
	TimeSlot     string      `json:"time_slot"`
	PartySize    int         `json:"party_size"`
	TableID      uint        `json:"table_id"`
	Note         string      `json:"note"`
	Items        []DraftItem `json:"items"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

type DraftItem struct {
	MenuID   uint   `json:"menu_id"`
	Quantity int    `json:"quantity"`
	Notes    string `json:"notes"`
}

func NewStore(redisURL string) (*Store, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Store{rdb: rdb}, nil
}

func draftKey(token string) string {
	return "booking_draft:" + token
}

// SaveDraft menyimpan (atau menimpa) draft untuk satu token sesi.
func (s *Store) SaveDraft(ctx context.Context, token string, draft *BookingDraft) error {
	draft.UpdatedAt = time.Now()

	jsonData, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to marshal booking draft: %w", err)
	}

	return s.rdb.Set(ctx, draftKey(token), jsonData, DraftTTL).Err()
}

// GetDraft mengambil draft milik token sesi.
func (s *Store) GetDraft(ctx context.Context, token string) (*BookingDraft, error) {
	val, err := s.rdb.Get(ctx, draftKey(token)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrDraftNotFound
		}
		return nil, fmt.Errorf("failed to get booking draft: %w", err)
	}

	var draft BookingDraft
	if err := json.Unmarshal([]byte(val), &draft); err != nil {
		return nil, fmt.Errorf("failed to unmarshal booking draft: %w", err)
	}

	return &draft, nil
}

// DeleteDraft membuang draft, dipanggil setelah booking terkirim.
func (s *Store) DeleteDraft(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, draftKey(token)).Err()
}

func (s *Store) Close() error {
	return s.rdb.Close()
}
