package impl

import (
	"context"
	"io"
	"log/slog"

	"shoplist/internal/domain/entity"
	domainerrors "shoplist/internal/domain/errors"
	"shoplist/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// The fakes below back the service tests with in-memory state. Finders hand
// out shallow clones so a service mutating an aggregate cannot leak into the
// stored state before Update is called, mirroring how a real store behaves.

type fakeOwnerRepo struct {
	owners map[uuid.UUID]*entity.Owner

	withinArea  []*entity.Owner
	lastPolygon string

	// forceConflict makes every Update fail the optimistic version check.
	forceConflict bool
}

func newFakeOwnerRepo() *fakeOwnerRepo {
	return &fakeOwnerRepo{owners: make(map[uuid.UUID]*entity.Owner)}
}

func cloneOwner(owner *entity.Owner) *entity.Owner {
	clone := *owner
	clone.Items = append([]*entity.Item(nil), owner.Items...)
	clone.InterestedArea = append([]entity.Coordinate(nil), owner.InterestedArea...)

	return &clone
}

func (r *fakeOwnerRepo) add(owner *entity.Owner) *entity.Owner {
	if owner.ID == uuid.Nil {
		owner.ID = uuid.New()
	}
	r.owners[owner.ID] = cloneOwner(owner)

	return owner
}

func (r *fakeOwnerRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Owner, error) {
	owner, ok := r.owners[id]
	if !ok {
		return nil, repository.ErrOwnerNotFound
	}

	return cloneOwner(owner), nil
}

func (r *fakeOwnerRepo) FindActiveByUsername(_ context.Context, username string) (*entity.Owner, error) {
	for _, owner := range r.owners {
		if owner.Active && owner.Username == username {
			return cloneOwner(owner), nil
		}
	}

	return nil, repository.ErrOwnerNotFound
}

func (r *fakeOwnerRepo) FindActiveByEmail(_ context.Context, email string) (*entity.Owner, error) {
	for _, owner := range r.owners {
		if owner.Active && owner.Email == email {
			return cloneOwner(owner), nil
		}
	}

	return nil, repository.ErrOwnerNotFound
}

func (r *fakeOwnerRepo) FindAllActive(_ context.Context) ([]*entity.Owner, error) {
	var owners []*entity.Owner
	for _, owner := range r.owners {
		if owner.Active {
			owners = append(owners, cloneOwner(owner))
		}
	}

	return owners, nil
}

func (r *fakeOwnerRepo) FindWithinArea(_ context.Context, polygon string) ([]*entity.Owner, error) {
	r.lastPolygon = polygon

	return r.withinArea, nil
}

func (r *fakeOwnerRepo) Create(_ context.Context, owner *entity.Owner) error {
	if owner.ID == uuid.Nil {
		owner.ID = uuid.New()
	}
	r.owners[owner.ID] = cloneOwner(owner)

	return nil
}

func (r *fakeOwnerRepo) Update(_ context.Context, owner *entity.Owner) error {
	stored, ok := r.owners[owner.ID]
	if !ok {
		return repository.ErrOwnerNotFound
	}
	if r.forceConflict || stored.Version != owner.Version {
		return domainerrors.ErrConcurrentModification.WrapMessage("owner " + owner.ID.String() + " was modified concurrently")
	}
	owner.Version++
	r.owners[owner.ID] = cloneOwner(owner)

	return nil
}

type fakeItemRepo struct {
	items map[string]*entity.Item
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: make(map[string]*entity.Item)}
}

func cloneItem(item *entity.Item) *entity.Item {
	clone := *item
	clone.SharedWith = append([]*entity.UserGroup(nil), item.SharedWith...)

	return &clone
}

func (r *fakeItemRepo) FindByKey(_ context.Context, key string) (*entity.Item, error) {
	item, ok := r.items[key]
	if !ok {
		return nil, repository.ErrItemNotFound
	}

	return cloneItem(item), nil
}

func (r *fakeItemRepo) Create(_ context.Context, item *entity.Item) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	r.items[item.Key] = cloneItem(item)

	return nil
}

func (r *fakeItemRepo) Update(_ context.Context, item *entity.Item) error {
	stored, ok := r.items[item.Key]
	if !ok {
		return repository.ErrItemNotFound
	}
	if stored.Version != item.Version {
		return domainerrors.ErrConcurrentModification.WrapMessage("item " + item.Key + " was modified concurrently")
	}
	item.Version++
	r.items[item.Key] = cloneItem(item)

	return nil
}

type fakeGroupRepo struct {
	groups map[uuid.UUID]*entity.UserGroup
}

func newFakeGroupRepo() *fakeGroupRepo {
	return &fakeGroupRepo{groups: make(map[uuid.UUID]*entity.UserGroup)}
}

func cloneGroup(group *entity.UserGroup) *entity.UserGroup {
	clone := *group
	clone.Members = append([]*entity.Owner(nil), group.Members...)

	return &clone
}

func (r *fakeGroupRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.UserGroup, error) {
	group, ok := r.groups[id]
	if !ok {
		return nil, repository.ErrGroupNotFound
	}

	return cloneGroup(group), nil
}

func (r *fakeGroupRepo) FindByOwner(_ context.Context, ownerID uuid.UUID) ([]*entity.UserGroup, error) {
	var groups []*entity.UserGroup
	for _, group := range r.groups {
		if group.OwnerID == ownerID {
			groups = append(groups, cloneGroup(group))
		}
	}

	return groups, nil
}

func (r *fakeGroupRepo) Create(_ context.Context, group *entity.UserGroup) error {
	if group.ID == uuid.Nil {
		group.ID = uuid.New()
	}
	r.groups[group.ID] = cloneGroup(group)

	return nil
}

func (r *fakeGroupRepo) Update(_ context.Context, group *entity.UserGroup) error {
	if _, ok := r.groups[group.ID]; !ok {
		return repository.ErrGroupNotFound
	}
	r.groups[group.ID] = cloneGroup(group)

	return nil
}

// fakeRepoFactory hands the fakes out as transaction-bound repositories.
type fakeRepoFactory struct {
	owners *fakeOwnerRepo
	items  *fakeItemRepo
	groups *fakeGroupRepo
}

func (f *fakeRepoFactory) OwnerRepo() repository.OwnerRepository     { return f.owners }
func (f *fakeRepoFactory) ItemRepo() repository.ItemRepository      { return f.items }
func (f *fakeRepoFactory) GroupRepo() repository.UserGroupRepository { return f.groups }

// fakeTxManager runs the callback directly against the fakes; there is no
// transactionality to emulate in memory.
type fakeTxManager struct {
	factory *fakeRepoFactory
}

func (tm *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(tm.factory)
}

type fixedGenerator struct {
	code string
	err  error
}

func (g *fixedGenerator) Generate() (string, error) {
	return g.code, g.err
}

type captureSender struct {
	phonenumber string
	code        string
	calls       int
	err         error
}

func (s *captureSender) Send(_ context.Context, phonenumber, code string) error {
	s.calls++
	s.phonenumber = phonenumber
	s.code = code

	return s.err
}

type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", errors.New("empty password")
	}

	return "hashed:" + password, nil
}

func (fakeHasher) Check(password, hash string) bool {
	return hash == "hashed:"+password
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fixtures struct {
	owners *fakeOwnerRepo
	items  *fakeItemRepo
	groups *fakeGroupRepo
	tx     *fakeTxManager
}

func newFixtures() *fixtures {
	owners := newFakeOwnerRepo()
	items := newFakeItemRepo()
	groups := newFakeGroupRepo()

	return &fixtures{
		owners: owners,
		items:  items,
		groups: groups,
		tx:     &fakeTxManager{factory: &fakeRepoFactory{owners: owners, items: items, groups: groups}},
	}
}

// attachItem stores an item and links it to the already-seeded owner.
func (f *fixtures) attachItem(ownerID uuid.UUID, key, title string, shareable bool) *entity.Item {
	item := entity.NewItem(entity.ItemConfig{Key: key, Title: title, Shareable: shareable})
	if err := f.items.Create(context.Background(), item); err != nil {
		panic(err)
	}
	stored := f.owners.owners[ownerID]
	stored.Items = append(stored.Items, item)

	return item
}

func (f *fixtures) seedOwner(username string) *entity.Owner {
	home := entity.NewCoordinate(9.18, 48.78, 0.1, 0.1)
	owner := entity.NewOwner(entity.OwnerConfig{
		Username:    username,
		Phonenumber: "0160111111",
		Email:       username + "@example.com",
		Home:        &home,
	})

	return f.owners.add(owner)
}
