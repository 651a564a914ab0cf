package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Eursukkul/helper-marketplace/internal/models"
	"github.com/Eursukkul/helper-marketplace/internal/repository"
)

// --- In-memory Store ---
//
// Transactions hold one mutex for their whole duration and work on a copy of
// the data that replaces the original only on success, which gives the same
// all-or-nothing and row-lock serialization the service relies on in Postgres.

type memData struct {
	seq      uint
	clock    time.Time
	bookings map[uint]models.Booking
	slots    map[uint]models.ScheduleSlot
	payments []models.Payment
	earnings []models.Earnings
	catalog  map[uint]models.CatalogItem
	workers  map[string]models.WorkerProfile
}

func (d *memData) clone() *memData {
	c := *d
	c.bookings = make(map[uint]models.Booking, len(d.bookings))
	for k, v := range d.bookings {
		c.bookings[k] = v
	}
	c.slots = make(map[uint]models.ScheduleSlot, len(d.slots))
	for k, v := range d.slots {
		c.slots[k] = v
	}
	c.payments = append([]models.Payment(nil), d.payments...)
	c.earnings = append([]models.Earnings(nil), d.earnings...)
	c.catalog = make(map[uint]models.CatalogItem, len(d.catalog))
	for k, v := range d.catalog {
		c.catalog[k] = v
	}
	c.workers = make(map[string]models.WorkerProfile, len(d.workers))
	for k, v := range d.workers {
		c.workers[k] = v
	}
	return &c
}

func (d *memData) next() (uint, time.Time) {
	d.seq++
	d.clock = d.clock.Add(time.Second)
	return d.seq, d.clock
}

type memRoot struct {
	mu       sync.Mutex
	data     *memData
	failures map[string]error
}

type memStore struct {
	root *memRoot
	tx   *memData
}

func newMemStore() *memStore {
	return &memStore{root: &memRoot{
		data: &memData{
			clock:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			bookings: map[uint]models.Booking{},
			slots:    map[uint]models.ScheduleSlot{},
			catalog:  map[uint]models.CatalogItem{},
			workers:  map[string]models.WorkerProfile{},
		},
		failures: map[string]error{},
	}}
}

// failOn makes every later call of the named operation return err.
func (s *memStore) failOn(op string, err error) {
	s.root.mu.Lock()
	defer s.root.mu.Unlock()
	s.root.failures[op] = err
}

func (s *memStore) do(op string, fn func(d *memData) error) error {
	if s.tx != nil {
		if err := s.root.failures[op]; err != nil {
			return err
		}
		return fn(s.tx)
	}
	s.root.mu.Lock()
	defer s.root.mu.Unlock()
	if err := s.root.failures[op]; err != nil {
		return err
	}
	return fn(s.root.data)
}

func (s *memStore) Transaction(ctx context.Context, fn func(tx repository.Store) error) error {
	s.root.mu.Lock()
	defer s.root.mu.Unlock()
	if err := s.root.failures["begin"]; err != nil {
		return err
	}
	work := s.root.data.clone()
	if err := fn(&memStore{root: s.root, tx: work}); err != nil {
		return err
	}
	s.root.data = work
	return nil
}

func (s *memStore) Bookings() repository.BookingRepository       { return memBookings{s} }
func (s *memStore) Schedules() repository.ScheduleRepository     { return memSchedules{s} }
func (s *memStore) Settlements() repository.SettlementRepository { return memSettlements{s} }
func (s *memStore) Catalog() repository.CatalogRepository        { return memCatalog{s} }
func (s *memStore) Workers() repository.WorkerRepository         { return memWorkers{s} }

// snapshot returns a copy of the committed data for assertions.
func (s *memStore) snapshot() *memData {
	s.root.mu.Lock()
	defer s.root.mu.Unlock()
	return s.root.data.clone()
}

func (s *memStore) booking(id uint) models.Booking {
	return s.snapshot().bookings[id]
}

func (s *memStore) addWorker(id string, completed, verified bool) {
	_ = s.Workers().Upsert(context.Background(), &models.WorkerProfile{ID: id, ProfileCompleted: completed, Verified: verified})
}

func (s *memStore) addCatalogItem(id uint, owner string, price int64) {
	_ = s.Catalog().Upsert(context.Background(), &models.CatalogItem{ID: id, OwnerID: owner, Title: "Deep clean", PriceCents: price})
}

// --- BookingRepository ---

type memBookings struct{ s *memStore }

func (r memBookings) Create(ctx context.Context, b *models.Booking) error {
	return r.s.do("bookings.create", func(d *memData) error {
		b.ID, b.CreatedAt = d.next()
		b.UpdatedAt = b.CreatedAt
		d.bookings[b.ID] = *b
		return nil
	})
}

func (r memBookings) find(op string, id uint) (*models.Booking, error) {
	var out *models.Booking
	err := r.s.do(op, func(d *memData) error {
		b, ok := d.bookings[id]
		if !ok {
			return repository.ErrNotFound
		}
		out = &b
		return nil
	})
	return out, err
}

func (r memBookings) FindByID(ctx context.Context, id uint) (*models.Booking, error) {
	return r.find("bookings.find", id)
}

func (r memBookings) FindByIDForUpdate(ctx context.Context, id uint) (*models.Booking, error) {
	return r.find("bookings.lock", id)
}

func (r memBookings) Save(ctx context.Context, b *models.Booking) error {
	return r.s.do("bookings.save", func(d *memData) error {
		_, b.UpdatedAt = d.next()
		d.bookings[b.ID] = *b
		return nil
	})
}

func (r memBookings) list(op string, limit int, keep func(models.Booking) bool) ([]models.Booking, error) {
	var out []models.Booking
	err := r.s.do(op, func(d *memData) error {
		for _, b := range d.bookings {
			if keep(b) {
				out = append(out, b)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, err
}

func (r memBookings) ListByMember(ctx context.Context, memberID string, limit int) ([]models.Booking, error) {
	return r.list("bookings.list", limit, func(b models.Booking) bool { return b.MemberID == memberID })
}

func (r memBookings) ListByWorker(ctx context.Context, workerID string, limit int) ([]models.Booking, error) {
	return r.list("bookings.list", limit, func(b models.Booking) bool { return b.IsWorker(workerID) })
}

func (r memBookings) ListOpen(ctx context.Context, limit int) ([]models.Booking, error) {
	return r.list("bookings.list", limit, func(b models.Booking) bool { return b.Status.Open() })
}

// --- ScheduleRepository ---

type memSchedules struct{ s *memStore }

func (r memSchedules) Create(ctx context.Context, slot *models.ScheduleSlot) error {
	return r.s.do("schedules.create", func(d *memData) error {
		if slot.BookingID != nil {
			for _, other := range d.slots {
				if other.BookingID != nil && *other.BookingID == *slot.BookingID {
					return repository.ErrDuplicate
				}
			}
		}
		slot.ID, slot.CreatedAt = d.next()
		d.slots[slot.ID] = *slot
		return nil
	})
}

func (r memSchedules) FindUnavailable(ctx context.Context, workerID, date string) ([]models.ScheduleSlot, error) {
	var out []models.ScheduleSlot
	err := r.s.do("schedules.find", func(d *memData) error {
		for _, slot := range d.slots {
			if slot.WorkerID == workerID && slot.Date == date && !slot.IsAvailable {
				out = append(out, slot)
			}
		}
		return nil
	})
	return out, err
}

func (r memSchedules) ReleaseByBooking(ctx context.Context, workerID string, bookingID uint) (int64, error) {
	var n int64
	err := r.s.do("schedules.release", func(d *memData) error {
		for id, slot := range d.slots {
			if slot.WorkerID == workerID && slot.BookingID != nil && *slot.BookingID == bookingID {
				slot.IsAvailable = true
				slot.BookingID = nil
				d.slots[id] = slot
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r memSchedules) ListByWorker(ctx context.Context, workerID, fromDate, toDate string) ([]models.ScheduleSlot, error) {
	var out []models.ScheduleSlot
	err := r.s.do("schedules.list", func(d *memData) error {
		for _, slot := range d.slots {
			if slot.WorkerID == workerID && slot.Date >= fromDate && slot.Date <= toDate {
				out = append(out, slot)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].StartTime < out[j].StartTime
	})
	return out, err
}

// --- SettlementRepository ---

type memSettlements struct{ s *memStore }

func (r memSettlements) CreatePayment(ctx context.Context, p *models.Payment) error {
	return r.s.do("settlements.payment", func(d *memData) error {
		p.ID, p.CreatedAt = d.next()
		d.payments = append(d.payments, *p)
		return nil
	})
}

func (r memSettlements) CreateEarnings(ctx context.Context, e *models.Earnings) error {
	return r.s.do("settlements.earnings", func(d *memData) error {
		e.ID, e.CreatedAt = d.next()
		d.earnings = append(d.earnings, *e)
		return nil
	})
}

func (r memSettlements) PaymentsByBooking(ctx context.Context, bookingID uint) ([]models.Payment, error) {
	var out []models.Payment
	err := r.s.do("settlements.list", func(d *memData) error {
		for _, p := range d.payments {
			if p.BookingID == bookingID {
				out = append(out, p)
			}
		}
		return nil
	})
	return out, err
}

func (r memSettlements) EarningsByWorker(ctx context.Context, workerID string) ([]models.Earnings, error) {
	var out []models.Earnings
	err := r.s.do("settlements.list", func(d *memData) error {
		for _, e := range d.earnings {
			if e.WorkerID == workerID {
				out = append(out, e)
			}
		}
		return nil
	})
	return out, err
}

// --- Directory ---

type memCatalog struct{ s *memStore }

func (r memCatalog) FindByID(ctx context.Context, id uint) (*models.CatalogItem, error) {
	var out *models.CatalogItem
	err := r.s.do("catalog.find", func(d *memData) error {
		item, ok := d.catalog[id]
		if !ok {
			return repository.ErrNotFound
		}
		out = &item
		return nil
	})
	return out, err
}

func (r memCatalog) Upsert(ctx context.Context, item *models.CatalogItem) error {
	return r.s.do("catalog.upsert", func(d *memData) error {
		d.catalog[item.ID] = *item
		return nil
	})
}

type memWorkers struct{ s *memStore }

func (r memWorkers) FindByID(ctx context.Context, id string) (*models.WorkerProfile, error) {
	var out *models.WorkerProfile
	err := r.s.do("workers.find", func(d *memData) error {
		w, ok := d.workers[id]
		if !ok {
			return repository.ErrNotFound
		}
		out = &w
		return nil
	})
	return out, err
}

func (r memWorkers) FindByIDForUpdate(ctx context.Context, id string) (*models.WorkerProfile, error) {
	return r.FindByID(ctx, id)
}

func (r memWorkers) Upsert(ctx context.Context, w *models.WorkerProfile) error {
	return r.s.do("workers.upsert", func(d *memData) error {
		d.workers[w.ID] = *w
		return nil
	})
}
