package services

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/dmitrijs2005/tasktracker/internal/dbx"
	"github.com/dmitrijs2005/tasktracker/internal/server/events"
	"github.com/dmitrijs2005/tasktracker/internal/server/models"
	"github.com/dmitrijs2005/tasktracker/internal/server/repositories/roles"
	"github.com/dmitrijs2005/tasktracker/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/tasktracker/internal/server/repositories/users"
)

type fakeUsersRepo struct {
	byEmail    map[string]*models.User
	nextID     int64
	createErr  error
	profileErr error
	getErr     error
	profiles   map[int64]string
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{byEmail: map[string]*models.User{}, profiles: map[int64]string{}, nextID: 1}
}

func (f *fakeUsersRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, ok := f.byEmail[u.Email]; ok {
		return nil, common.ErrorAlreadyExists
	}
	u.ID = f.nextID
	u.CreatedAt = time.Date(2025, 1, 1, 0, 0, int(f.nextID), 0, time.UTC)
	f.nextID++
	f.byEmail[u.Email] = u
	return u, nil
}

func (f *fakeUsersRepo) UpsertByEmail(ctx context.Context, email string) (*models.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return f.Create(ctx, &models.User{Email: email})
}

func (f *fakeUsersRepo) SetProfile(_ context.Context, userID int64, fullName string) error {
	if f.profileErr != nil {
		return f.profileErr
	}
	f.profiles[userID] = fullName
	return nil
}

func (f *fakeUsersRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	cp.Username = f.profiles[u.ID]
	return &cp, nil
}

func (f *fakeUsersRepo) sorted() []models.User {
	out := make([]models.User, 0, len(f.byEmail))
	for _, u := range f.byEmail {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *fakeUsersRepo) Count(context.Context) (int, error) { return len(f.byEmail), nil }

func (f *fakeUsersRepo) List(_ context.Context, skip, limit int) ([]models.User, error) {
	all := f.sorted()
	if skip >= len(all) {
		return []models.User{}, nil
	}
	return all[skip:min(skip+limit, len(all))], nil
}

type fakeRolesRepo struct {
	roles    map[string]*models.Role
	assigned map[int64][]int64
	err      error
}

func newFakeRolesRepo() *fakeRolesRepo {
	return &fakeRolesRepo{roles: map[string]*models.Role{}, assigned: map[int64][]int64{}}
}

func (f *fakeRolesRepo) Ensure(_ context.Context, name string) (*models.Role, error) {
	if f.err != nil {
		return nil, f.err
	}
	if r, ok := f.roles[name]; ok {
		return r, nil
	}
	r := &models.Role{ID: int64(len(f.roles) + 1), Name: name}
	f.roles[name] = r
	return r, nil
}

func (f *fakeRolesRepo) GetByName(_ context.Context, name string) (*models.Role, error) {
	if r, ok := f.roles[name]; ok {
		return r, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeRolesRepo) Assign(_ context.Context, userID, roleID int64) error {
	for _, id := range f.assigned[userID] {
		if id == roleID {
			return nil
		}
	}
	f.assigned[userID] = append(f.assigned[userID], roleID)
	return nil
}

type fakeTasksRepo struct {
	items     map[int64]*models.Task
	nextID    int64
	createErr error
	updateErr error
}

func newFakeTasksRepo() *fakeTasksRepo {
	return &fakeTasksRepo{items: map[int64]*models.Task{}, nextID: 1}
}

func (f *fakeTasksRepo) Count(context.Context) (int, error) { return len(f.items), nil }

func (f *fakeTasksRepo) List(_ context.Context, skip, limit int) ([]models.Task, error) {
	all := make([]models.Task, 0, len(f.items))
	for _, t := range f.items {
		all = append(all, *t)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	if skip >= len(all) {
		return []models.Task{}, nil
	}
	return all[skip:min(skip+limit, len(all))], nil
}

func (f *fakeTasksRepo) GetByID(_ context.Context, id int64) (*models.Task, error) {
	t, ok := f.items[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTasksRepo) Create(_ context.Context, title string, assignedToID *int64) (int64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	id := f.nextID
	f.nextID++
	f.items[id] = &models.Task{ID: id, Title: title, AssignedToID: assignedToID}
	return id, nil
}

func (f *fakeTasksRepo) Update(_ context.Context, t *models.Task) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.items[t.ID]; !ok {
		return common.ErrorNotFound
	}
	cp := *t
	f.items[t.ID] = &cp
	return nil
}

func (f *fakeTasksRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.items[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.items, id)
	return nil
}

type fakeRepoManager struct {
	users *fakeUsersRepo
	roles *fakeRolesRepo
	tasks *fakeTasksRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{users: newFakeUsersRepo(), roles: newFakeRolesRepo(), tasks: newFakeTasksRepo()}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository            { return m.users }
func (m *fakeRepoManager) Roles(dbx.DBTX) roles.Repository            { return m.roles }
func (m *fakeRepoManager) Tasks(dbx.DBTX) tasks.Repository            { return m.tasks }

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}
