package services

import (
	"context"

	"gruzBack/internal/models"
)

// In-memory fakes shared by the service tests.

type fakeUserRepo struct {
	users    map[int]models.User
	profiles map[int]models.ExecutorProfile
	roles    map[int]string
}

func newFakeUserRepo(users ...models.User) *fakeUserRepo {
	r := &fakeUserRepo{
		users:    make(map[int]models.User),
		profiles: make(map[int]models.ExecutorProfile),
		roles:    make(map[int]string),
	}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) CreateUser(ctx context.Context, u models.User) (models.User, error) {
	existing, ok := r.users[u.ID]
	if ok {
		existing.Username = u.Username
		existing.FullName = u.FullName
		r.users[u.ID] = existing
		return existing, nil
	}
	if u.Role == "" {
		u.Role = models.RoleCustomer
	}
	r.users[u.ID] = u
	return u, nil
}

func (r *fakeUserRepo) SignUpUser(ctx context.Context, u models.User) (models.User, error) {
	for _, existing := range r.users {
		if existing.Phone == u.Phone {
			return models.User{}, models.ErrDuplicatePhone
		}
	}
	u.ID = len(r.users) + 1
	u.Role = models.RoleCustomer
	r.users[u.ID] = u
	return u, nil
}

func (r *fakeUserRepo) GetUser(ctx context.Context, id int) (models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return models.User{}, models.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetUserByPhone(ctx context.Context, phone string) (models.User, error) {
	for _, u := range r.users {
		if u.Phone == phone {
			return u, nil
		}
	}
	return models.User{}, models.ErrUserNotFound
}

func (r *fakeUserRepo) UpdateUserRole(ctx context.Context, userID int, role string) error {
	u, ok := r.users[userID]
	if !ok {
		return models.ErrUserNotFound
	}
	u.Role = role
	r.users[userID] = u
	r.roles[userID] = role
	return nil
}

func (r *fakeUserRepo) CreateSession(ctx context.Context, s models.Session) error {
	return nil
}

func (r *fakeUserRepo) CreateExecutorProfile(ctx context.Context, userID int) error {
	if _, ok := r.profiles[userID]; !ok {
		r.profiles[userID] = models.ExecutorProfile{UserID: userID}
	}
	return nil
}

func (r *fakeUserRepo) GetExecutorProfile(ctx context.Context, userID int) (models.ExecutorProfile, error) {
	p, ok := r.profiles[userID]
	if !ok {
		return models.ExecutorProfile{}, models.ErrProfileNotFound
	}
	return p, nil
}

func (r *fakeUserRepo) UpdateExecutorProfile(ctx context.Context, userID int, patch models.ExecutorProfilePatch) error {
	p, ok := r.profiles[userID]
	if !ok {
		return models.ErrProfileNotFound
	}
	if patch.MinPrice != nil {
		p.MinPrice = patch.MinPrice
	}
	if patch.MaxPrice != nil {
		p.MaxPrice = patch.MaxPrice
	}
	if patch.ServiceFilter != nil {
		p.ServiceFilter = patch.ServiceFilter
	}
	r.profiles[userID] = p
	return nil
}

func (r *fakeUserRepo) GetUserStats(ctx context.Context, userID int) (models.UserStats, error) {
	u, ok := r.users[userID]
	if !ok {
		return models.UserStats{}, models.ErrUserNotFound
	}
	return models.UserStats{User: u}, nil
}

type fakeOrderRepo struct {
	orders        map[string]models.Order
	statusUpdates map[string]string
	selectedOffer int
	selectedErr   error
	filterCalls   []filterCall
}

type filterCall struct {
	executorID         int
	minPrice, maxPrice *int
	serviceFilter      *string
}

func newFakeOrderRepo(orders ...models.Order) *fakeOrderRepo {
	r := &fakeOrderRepo{
		orders:        make(map[string]models.Order),
		statusUpdates: make(map[string]string),
	}
	for _, o := range orders {
		r.orders[o.OrderID] = o
	}
	return r
}

func (r *fakeOrderRepo) CreateOrder(ctx context.Context, o models.Order) (models.Order, error) {
	r.orders[o.OrderID] = o
	return o, nil
}

func (r *fakeOrderRepo) GetOrder(ctx context.Context, orderID string) (models.Order, error) {
	o, ok := r.orders[orderID]
	if !ok {
		return models.Order{}, models.ErrOrderNotFound
	}
	return o, nil
}

func (r *fakeOrderRepo) GetOrdersByUser(ctx context.Context, userID int) ([]models.Order, error) {
	var out []models.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) GetActiveOrders(ctx context.Context, excludeUserID *int) ([]models.Order, error) {
	var out []models.Order
	for _, o := range r.orders {
		if o.Status != models.OrderStatusActive {
			continue
		}
		if excludeUserID != nil && o.UserID == *excludeUserID {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func (r *fakeOrderRepo) GetFilteredOrders(ctx context.Context, executorID int, minPrice, maxPrice *int, serviceFilter *string) ([]models.Order, error) {
	r.filterCalls = append(r.filterCalls, filterCall{executorID, minPrice, maxPrice, serviceFilter})
	return nil, nil
}

func (r *fakeOrderRepo) UpdateOrderStatus(ctx context.Context, orderID, status string) error {
	o, ok := r.orders[orderID]
	if !ok {
		return models.ErrOrderNotFound
	}
	o.Status = status
	r.orders[orderID] = o
	r.statusUpdates[orderID] = status
	return nil
}

func (r *fakeOrderRepo) SelectOffer(ctx context.Context, orderID string, offerID int) (int, error) {
	if r.selectedErr != nil {
		return 0, r.selectedErr
	}
	r.selectedOffer = offerID
	return 777, nil
}

type fakeOfferRepo struct {
	offers map[string][]models.Offer
}

func newFakeOfferRepo() *fakeOfferRepo {
	return &fakeOfferRepo{offers: make(map[string][]models.Offer)}
}

func (r *fakeOfferRepo) UpsertOffer(ctx context.Context, offer models.Offer) (models.Offer, error) {
	existing := r.offers[offer.OrderID]
	for i, o := range existing {
		if o.ExecutorID == offer.ExecutorID {
			offer.ID = o.ID
			existing[i] = offer
			return offer, nil
		}
	}
	offer.ID = len(existing) + 1
	r.offers[offer.OrderID] = append(existing, offer)
	return offer, nil
}

func (r *fakeOfferRepo) GetOffersForOrder(ctx context.Context, orderID string) ([]models.Offer, error) {
	return r.offers[orderID], nil
}

func (r *fakeOfferRepo) GetOffersForOrderWithExecutors(ctx context.Context, orderID string, customerLat, customerLon *float64) ([]models.OfferWithExecutor, error) {
	var out []models.OfferWithExecutor
	for _, o := range r.offers[orderID] {
		out = append(out, models.OfferWithExecutor{Offer: o})
	}
	return out, nil
}

func (r *fakeOfferRepo) GetOffersByExecutor(ctx context.Context, executorID int) ([]models.OfferWithOrder, error) {
	var out []models.OfferWithOrder
	for _, offers := range r.offers {
		for _, o := range offers {
			if o.ExecutorID == executorID {
				out = append(out, models.OfferWithOrder{Offer: o})
			}
		}
	}
	return out, nil
}

func (r *fakeOfferRepo) CountOffersForOrder(ctx context.Context, orderID string) (int, error) {
	return len(r.offers[orderID]), nil
}

type fakeEquipmentRepo struct {
	equipment map[int]models.Equipment
	nextID    int
}

func newFakeEquipmentRepo(items ...models.Equipment) *fakeEquipmentRepo {
	r := &fakeEquipmentRepo{equipment: make(map[int]models.Equipment), nextID: 1}
	for _, e := range items {
		r.equipment[e.ID] = e
		if e.ID >= r.nextID {
			r.nextID = e.ID + 1
		}
	}
	return r
}

func (r *fakeEquipmentRepo) CreateEquipment(ctx context.Context, e models.Equipment) (models.Equipment, error) {
	e.ID = r.nextID
	r.nextID++
	r.equipment[e.ID] = e
	return e, nil
}

func (r *fakeEquipmentRepo) GetEquipment(ctx context.Context, id int) (models.Equipment, error) {
	e, ok := r.equipment[id]
	if !ok {
		return models.Equipment{}, models.ErrEquipmentNotFound
	}
	return e, nil
}

func (r *fakeEquipmentRepo) GetExecutorEquipment(ctx context.Context, executorID int) ([]models.Equipment, error) {
	var out []models.Equipment
	for _, e := range r.equipment {
		if e.ExecutorID == executorID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeEquipmentRepo) GetAvailableEquipmentByType(ctx context.Context, equipmentType string) ([]models.Equipment, error) {
	var out []models.Equipment
	for _, e := range r.equipment {
		if e.IsAvailable && e.EquipmentType == equipmentType {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeEquipmentRepo) UpdateEquipment(ctx context.Context, id int, patch models.EquipmentPatch) error {
	e, ok := r.equipment[id]
	if !ok {
		return models.ErrEquipmentNotFound
	}
	if patch.DailyRate != nil {
		e.DailyRate = patch.DailyRate
	}
	if patch.HourlyRate != nil {
		e.HourlyRate = patch.HourlyRate
	}
	if patch.PhotoURL != nil {
		e.PhotoURL = patch.PhotoURL
	}
	r.equipment[id] = e
	return nil
}

func (r *fakeEquipmentRepo) DeleteEquipment(ctx context.Context, id int) (bool, error) {
	if _, ok := r.equipment[id]; !ok {
		return false, nil
	}
	delete(r.equipment, id)
	return true, nil
}

func (r *fakeEquipmentRepo) ToggleAvailability(ctx context.Context, id int, isAvailable bool) (bool, error) {
	e, ok := r.equipment[id]
	if !ok {
		return false, nil
	}
	e.IsAvailable = isAvailable
	r.equipment[id] = e
	return true, nil
}

type fakeLocationRepo struct {
	locations map[int]models.UserLocation
}

func (r *fakeLocationRepo) GetLocation(ctx context.Context, userID int) (models.UserLocation, error) {
	loc, ok := r.locations[userID]
	if !ok {
		return models.UserLocation{}, models.ErrLocationNotFound
	}
	return loc, nil
}

type recordingNotifier struct {
	newOffers []models.Offer
	selected  []int
}

func (n *recordingNotifier) NewOffer(order models.Order, offer models.Offer) {
	n.newOffers = append(n.newOffers, offer)
}

func (n *recordingNotifier) OfferSelected(order models.Order, executorID int) {
	n.selected = append(n.selected, executorID)
}
