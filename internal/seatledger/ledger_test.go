package seatledger

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory Store with the same contract as the database
// implementation: InTx serializes writers and rolls back on error, and a
// colliding insert fails with SeatAlreadyTakenError.
type memStore struct {
	mu      sync.Mutex
	layouts map[uuid.UUID]Layout
	taken   map[uuid.UUID]map[Seat]uuid.UUID
}

func newMemStore() *memStore {
	return &memStore{
		layouts: make(map[uuid.UUID]Layout),
		taken:   make(map[uuid.UUID]map[Seat]uuid.UUID),
	}
}

func (m *memStore) addFlight(layout Layout) uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := uuid.New()
	m.layouts[id] = layout
	m.taken[id] = make(map[Seat]uuid.UUID)
	return id
}

// seed places tickets directly, bypassing validation.
func (m *memStore) seed(flightID uuid.UUID, seats ...Seat) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range seats {
		m.taken[flightID][s] = uuid.New()
	}
}

func (m *memStore) Layout(ctx context.Context, flightID uuid.UUID) (Layout, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.layoutLocked(flightID)
}

func (m *memStore) TakenSeats(ctx context.Context, flightID uuid.UUID) ([]Seat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.takenSeatsLocked(flightID)
}

func (m *memStore) LockFlight(ctx context.Context, flightID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lockFlightLocked(flightID)
}

func (m *memStore) InsertTickets(ctx context.Context, flightID, orderID uuid.UUID, seats []Seat) ([]Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.insertTicketsLocked(flightID, orderID, seats)
}

func (m *memStore) InTx(ctx context.Context, fn func(tx Store) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := make(map[uuid.UUID]map[Seat]uuid.UUID, len(m.taken))
	for flight, seats := range m.taken {
		cp := make(map[Seat]uuid.UUID, len(seats))
		for s, o := range seats {
			cp[s] = o
		}
		snapshot[flight] = cp
	}

	if err := fn(&memTx{m}); err != nil {
		m.taken = snapshot
		return err
	}
	return nil
}

func (m *memStore) layoutLocked(flightID uuid.UUID) (Layout, error) {
	layout, ok := m.layouts[flightID]
	if !ok {
		return Layout{}, ErrFlightNotFound
	}
	return layout, nil
}

func (m *memStore) takenSeatsLocked(flightID uuid.UUID) ([]Seat, error) {
	seats := make([]Seat, 0, len(m.taken[flightID]))
	for s := range m.taken[flightID] {
		seats = append(seats, s)
	}
	sort.Slice(seats, func(i, j int) bool {
		if seats[i].Row != seats[j].Row {
			return seats[i].Row < seats[j].Row
		}
		return seats[i].Number < seats[j].Number
	})
	return seats, nil
}

func (m *memStore) lockFlightLocked(flightID uuid.UUID) error {
	if _, ok := m.layouts[flightID]; !ok {
		return ErrFlightNotFound
	}
	return nil
}

func (m *memStore) insertTicketsLocked(flightID, orderID uuid.UUID, seats []Seat) ([]Reservation, error) {
	reservations := make([]Reservation, 0, len(seats))
	for _, s := range seats {
		if _, occupied := m.taken[flightID][s]; occupied {
			return nil, &SeatAlreadyTakenError{Seat: s}
		}
		m.taken[flightID][s] = orderID
		reservations = append(reservations, Reservation{
			TicketID: uuid.New(),
			FlightID: flightID,
			OrderID:  orderID,
			Seat:     s,
		})
	}
	return reservations, nil
}

// memTx is the view handed to InTx callbacks; the store mutex is already
// held, which stands in for the flight row lock.
type memTx struct {
	m *memStore
}

func (t *memTx) Layout(ctx context.Context, flightID uuid.UUID) (Layout, error) {
	return t.m.layoutLocked(flightID)
}

func (t *memTx) TakenSeats(ctx context.Context, flightID uuid.UUID) ([]Seat, error) {
	return t.m.takenSeatsLocked(flightID)
}

func (t *memTx) LockFlight(ctx context.Context, flightID uuid.UUID) error {
	return t.m.lockFlightLocked(flightID)
}

func (t *memTx) InsertTickets(ctx context.Context, flightID, orderID uuid.UUID, seats []Seat) ([]Reservation, error) {
	return t.m.insertTicketsLocked(flightID, orderID, seats)
}

func (t *memTx) InTx(ctx context.Context, fn func(tx Store) error) error {
	return fn(t)
}

func TestLayout_CapacityAndContains(t *testing.T) {
	layout := Layout{Rows: 2, SeatsPerRow: 2}

	assert.Equal(t, 4, layout.Capacity())

	tests := []struct {
		name string
		seat Seat
		want bool
	}{
		{"first seat", Seat{Row: 1, Number: 1}, true},
		{"last seat", Seat{Row: 2, Number: 2}, true},
		{"row too high", Seat{Row: 3, Number: 1}, false},
		{"seat too high", Seat{Row: 1, Number: 3}, false},
		{"row zero", Seat{Row: 0, Number: 1}, false},
		{"seat zero", Seat{Row: 1, Number: 0}, false},
		{"negative row", Seat{Row: -1, Number: 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, layout.Contains(tt.seat))
		})
	}
}

func TestDuplicateSeat(t *testing.T) {
	dup, ok := duplicateSeat([]Seat{{1, 1}, {1, 2}, {2, 1}})
	assert.False(t, ok)
	assert.Equal(t, Seat{}, dup)

	dup, ok = duplicateSeat([]Seat{{2, 1}, {2, 2}, {2, 1}})
	assert.True(t, ok)
	assert.Equal(t, Seat{Row: 2, Number: 1}, dup)
}

func TestLedger_Capacity(t *testing.T) {
	store := newMemStore()
	flightID := store.addFlight(Layout{Rows: 2, SeatsPerRow: 2})
	ledger := New(store)

	capacity, err := ledger.Capacity(context.Background(), flightID)
	require.NoError(t, err)
	assert.Equal(t, 4, capacity)

	_, err = ledger.Capacity(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrFlightNotFound)
}

func TestLedger_AvailableCount(t *testing.T) {
	store := newMemStore()
	flightID := store.addFlight(Layout{Rows: 2, SeatsPerRow: 2})
	store.seed(flightID, Seat{Row: 1, Number: 1})
	ledger := New(store)

	available, err := ledger.AvailableCount(context.Background(), flightID)
	require.NoError(t, err)
	assert.Equal(t, 3, available)

	taken, err := ledger.TakenSeats(context.Background(), flightID)
	require.NoError(t, err)
	assert.Equal(t, []Seat{{Row: 1, Number: 1}}, taken)
}

func TestLedger_AvailableCount_CapacityIntegrity(t *testing.T) {
	store := newMemStore()
	flightID := store.addFlight(Layout{Rows: 2, SeatsPerRow: 2})
	// Corrupt the data out of band: more tickets than seats.
	store.seed(flightID,
		Seat{1, 1}, Seat{1, 2}, Seat{2, 1}, Seat{2, 2}, Seat{5, 5})
	ledger := New(store)

	_, err := ledger.AvailableCount(context.Background(), flightID)
	var integrityErr *CapacityIntegrityError
	require.ErrorAs(t, err, &integrityErr)
	assert.Equal(t, flightID, integrityErr.FlightID)
	assert.Equal(t, 4, integrityErr.Capacity)
	assert.Equal(t, 5, integrityErr.Taken)
}

func TestLedger_ValidateAndReserve(t *testing.T) {
	tests := []struct {
		name      string
		preTaken  []Seat
		request   []Seat
		wantErr   func(t *testing.T, err error)
		wantTaken []Seat
	}{
		{
			name:    "row out of range",
			request: []Seat{{Row: 3, Number: 1}},
			wantErr: func(t *testing.T, err error) {
				var oor *OutOfRangeError
				require.ErrorAs(t, err, &oor)
				assert.Equal(t, Seat{Row: 3, Number: 1}, oor.Seat)
				assert.Equal(t, Layout{Rows: 2, SeatsPerRow: 2}, oor.Layout)
			},
		},
		{
			name:    "seat number out of range",
			request: []Seat{{Row: 1, Number: 3}},
			wantErr: func(t *testing.T, err error) {
				var oor *OutOfRangeError
				require.ErrorAs(t, err, &oor)
				assert.Equal(t, Seat{Row: 1, Number: 3}, oor.Seat)
			},
		},
		{
			name:    "zero coordinates out of range",
			request: []Seat{{Row: 0, Number: 1}},
			wantErr: func(t *testing.T, err error) {
				var oor *OutOfRangeError
				assert.ErrorAs(t, err, &oor)
			},
		},
		{
			name:    "duplicate within batch",
			request: []Seat{{Row: 2, Number: 1}, {Row: 2, Number: 1}},
			wantErr: func(t *testing.T, err error) {
				var dup *DuplicateInBatchError
				require.ErrorAs(t, err, &dup)
				assert.Equal(t, Seat{Row: 2, Number: 1}, dup.Seat)
			},
		},
		{
			name:     "seat already taken, nothing partial",
			preTaken: []Seat{{Row: 1, Number: 1}},
			request:  []Seat{{Row: 1, Number: 1}, {Row: 1, Number: 2}},
			wantErr: func(t *testing.T, err error) {
				var taken *SeatAlreadyTakenError
				require.ErrorAs(t, err, &taken)
				assert.Equal(t, Seat{Row: 1, Number: 1}, taken.Seat)
			},
			wantTaken: []Seat{{Row: 1, Number: 1}},
		},
		{
			name:     "reports first conflicting seat in request order",
			preTaken: []Seat{{Row: 1, Number: 1}, {Row: 1, Number: 2}},
			request:  []Seat{{Row: 1, Number: 2}, {Row: 1, Number: 1}},
			wantErr: func(t *testing.T, err error) {
				var taken *SeatAlreadyTakenError
				require.ErrorAs(t, err, &taken)
				assert.Equal(t, Seat{Row: 1, Number: 2}, taken.Seat)
			},
		},
		{
			name:    "out of range wins over duplicate and taken",
			request: []Seat{{Row: 9, Number: 9}, {Row: 1, Number: 1}, {Row: 1, Number: 1}},
			wantErr: func(t *testing.T, err error) {
				var oor *OutOfRangeError
				assert.ErrorAs(t, err, &oor)
			},
		},
		{
			name:     "duplicate wins over taken",
			preTaken: []Seat{{Row: 1, Number: 1}},
			request:  []Seat{{Row: 1, Number: 1}, {Row: 1, Number: 1}},
			wantErr: func(t *testing.T, err error) {
				var dup *DuplicateInBatchError
				assert.ErrorAs(t, err, &dup)
			},
			wantTaken: []Seat{{Row: 1, Number: 1}},
		},
		{
			name:      "successful reservation",
			preTaken:  []Seat{{Row: 1, Number: 1}},
			request:   []Seat{{Row: 2, Number: 1}, {Row: 2, Number: 2}},
			wantTaken: []Seat{{Row: 1, Number: 1}, {Row: 2, Number: 1}, {Row: 2, Number: 2}},
		},
		{
			name:    "empty batch is a no-op",
			request: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore()
			flightID := store.addFlight(Layout{Rows: 2, SeatsPerRow: 2})
			store.seed(flightID, tt.preTaken...)
			ledger := New(store)
			orderID := uuid.New()

			reservations, err := ledger.ValidateAndReserve(context.Background(), flightID, orderID, tt.request)

			if tt.wantErr != nil {
				tt.wantErr(t, err)
				assert.Empty(t, reservations)
			} else {
				require.NoError(t, err)
				require.Len(t, reservations, len(tt.request))
				for i, r := range reservations {
					assert.Equal(t, tt.request[i], r.Seat)
					assert.Equal(t, flightID, r.FlightID)
					assert.Equal(t, orderID, r.OrderID)
				}
			}

			if tt.wantTaken != nil {
				taken, err := ledger.TakenSeats(context.Background(), flightID)
				require.NoError(t, err)
				assert.Equal(t, tt.wantTaken, taken)
			}
		})
	}
}

func TestLedger_ValidateAndReserve_AvailabilityAfterReserve(t *testing.T) {
	store := newMemStore()
	flightID := store.addFlight(Layout{Rows: 2, SeatsPerRow: 2})
	store.seed(flightID, Seat{Row: 1, Number: 1})
	ledger := New(store)

	_, err := ledger.ValidateAndReserve(context.Background(), flightID, uuid.New(),
		[]Seat{{Row: 2, Number: 1}, {Row: 2, Number: 2}})
	require.NoError(t, err)

	available, err := ledger.AvailableCount(context.Background(), flightID)
	require.NoError(t, err)
	assert.Equal(t, 1, available)
}

func TestLedger_ValidateAndReserve_UnknownFlight(t *testing.T) {
	ledger := New(newMemStore())

	_, err := ledger.ValidateAndReserve(context.Background(), uuid.New(), uuid.New(),
		[]Seat{{Row: 1, Number: 1}})
	assert.ErrorIs(t, err, ErrFlightNotFound)
}

// blindStore hides existing tickets from the pre-insert conflict check,
// forcing the insert itself to collide the way a lost race does.
type blindStore struct {
	Store
}

func (b *blindStore) TakenSeats(ctx context.Context, flightID uuid.UUID) ([]Seat, error) {
	return nil, nil
}

func (b *blindStore) InTx(ctx context.Context, fn func(tx Store) error) error {
	return b.Store.InTx(ctx, func(tx Store) error {
		return fn(&blindStore{tx})
	})
}

func TestLedger_ValidateAndReserve_RaceLoserRollsBack(t *testing.T) {
	store := newMemStore()
	flightID := store.addFlight(Layout{Rows: 2, SeatsPerRow: 2})
	store.seed(flightID, Seat{Row: 1, Number: 1})
	ledger := New(&blindStore{store})

	_, err := ledger.ValidateAndReserve(context.Background(), flightID, uuid.New(),
		[]Seat{{Row: 2, Number: 1}, {Row: 1, Number: 1}})

	var taken *SeatAlreadyTakenError
	require.ErrorAs(t, err, &taken)
	assert.Equal(t, Seat{Row: 1, Number: 1}, taken.Seat)

	// The (2,1) insert that preceded the collision must be rolled back.
	seats, err := store.TakenSeats(context.Background(), flightID)
	require.NoError(t, err)
	assert.Equal(t, []Seat{{Row: 1, Number: 1}}, seats)
}

func TestLedger_ValidateAndReserve_ConcurrentSingleWinner(t *testing.T) {
	for i := 0; i < 25; i++ {
		store := newMemStore()
		flightID := store.addFlight(Layout{Rows: 2, SeatsPerRow: 2})
		ledger := New(store)
		seat := []Seat{{Row: 1, Number: 1}}

		var wg sync.WaitGroup
		errs := make([]error, 2)
		for g := 0; g < 2; g++ {
			wg.Add(1)
			go func(g int) {
				defer wg.Done()
				_, errs[g] = ledger.ValidateAndReserve(context.Background(), flightID, uuid.New(), seat)
			}(g)
		}
		wg.Wait()

		winners, losers := 0, 0
		for _, err := range errs {
			if err == nil {
				winners++
				continue
			}
			var taken *SeatAlreadyTakenError
			require.ErrorAs(t, err, &taken)
			losers++
		}
		assert.Equal(t, 1, winners)
		assert.Equal(t, 1, losers)

		seats, err := store.TakenSeats(context.Background(), flightID)
		require.NoError(t, err)
		assert.Len(t, seats, 1)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	uniqueErr := &pgconn.PgError{Code: "23505", ConstraintName: "uq_tickets_flight_row_seat"}
	assert.True(t, isUniqueViolation(uniqueErr))
	assert.True(t, isUniqueViolation(fmt.Errorf("create ticket: %w", uniqueErr)))

	assert.False(t, isUniqueViolation(errors.New("connection refused")))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(nil))
}
