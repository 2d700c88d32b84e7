package visibility

import (
	"context"
	"errors"
	"testing"

	"github.com/leadwise/crm-backend-go/internal/domain/visibility"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDirectory is an in-memory role/user directory for engine tests.
type fakeDirectory struct {
	users        map[string]visibility.User   // user ID -> user
	children     map[string][]visibility.Role // role ID -> direct child roles
	usersByRole  map[string][]visibility.User // role ID -> members
	childErr     map[string]error
	userRoleErr  map[string]error
	missingUsers map[string]bool
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{
		users:        make(map[string]visibility.User),
		children:     make(map[string][]visibility.Role),
		usersByRole:  make(map[string][]visibility.User),
		childErr:     make(map[string]error),
		userRoleErr:  make(map[string]error),
		missingUsers: make(map[string]bool),
	}
}

func (d *fakeDirectory) addUser(id, roleID string) {
	u := visibility.User{ID: id, RoleID: roleID}
	d.users[id] = u
	if roleID != "" {
		d.usersByRole[roleID] = append(d.usersByRole[roleID], u)
	}
}

func (d *fakeDirectory) addRole(id, parentID string) {
	if parentID != "" {
		d.children[parentID] = append(d.children[parentID], visibility.Role{ID: id, ParentRoleID: &parentID})
	}
}

func (d *fakeDirectory) GetUser(ctx context.Context, userID string) (*visibility.User, error) {
	if d.missingUsers[userID] {
		return nil, nil
	}
	u, ok := d.users[userID]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (d *fakeDirectory) GetChildRoles(ctx context.Context, roleID string) ([]visibility.Role, error) {
	if err := d.childErr[roleID]; err != nil {
		return nil, err
	}
	return d.children[roleID], nil
}

func (d *fakeDirectory) GetUsersByRole(ctx context.Context, roleID string) ([]visibility.User, error) {
	if err := d.userRoleErr[roleID]; err != nil {
		return nil, err
	}
	return d.usersByRole[roleID], nil
}

func TestResolver_TransitiveSubordinates(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	dir := newFakeDirectory()
	// manager role R0 -> R1 -> R2, plus sibling R1' outside the tree.
	dir.addRole("R1", "R0")
	dir.addRole("R2", "R1")
	dir.addRole("R1x", "Rother")
	dir.addUser("manager", "R0")
	dir.addUser("agent1", "R1")
	dir.addUser("agent2", "R2")
	dir.addUser("outsider", "R1x")

	subs, err := NewResolver(dir, dir).Subordinates(ctx, "manager")
	require.NoError(t, err)

	assert.Contains(t, subs, "agent1")
	assert.Contains(t, subs, "agent2")
	// Only true descendants count: neither the manager's own role's users
	// nor a look-alike sibling tree.
	assert.NotContains(t, subs, "manager")
	assert.NotContains(t, subs, "outsider")
	assert.Len(t, subs, 2)
}

func TestResolver_MissingManagerOrRole(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	dir := newFakeDirectory()
	dir.addUser("roleless", "")

	r := NewResolver(dir, dir)

	subs, err := r.Subordinates(ctx, "ghost")
	require.NoError(t, err)
	assert.Empty(t, subs)

	subs, err = r.Subordinates(ctx, "roleless")
	require.NoError(t, err)
	assert.Empty(t, subs)
}

func TestResolver_CycleTerminates(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	dir := newFakeDirectory()
	// Malformed hierarchy: R1 -> R2 -> R1.
	dir.addRole("R1", "R0")
	dir.addRole("R2", "R1")
	dir.addRole("R1", "R2")
	dir.addUser("manager", "R0")
	dir.addUser("a", "R1")
	dir.addUser("b", "R2")

	subs, err := NewResolver(dir, dir).Subordinates(ctx, "manager")
	require.NoError(t, err)

	// Terminates with the finite set reached before the cycle repeats.
	assert.Contains(t, subs, "a")
	assert.Contains(t, subs, "b")
	assert.Len(t, subs, 2)
}

func TestResolver_LookupFailureDegradesToPartialSet(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	dir := newFakeDirectory()
	dir.addRole("R1", "R0")
	dir.addRole("R2", "R0")
	dir.addUser("manager", "R0")
	dir.addUser("a", "R1")
	dir.addUser("b", "R2")
	dir.userRoleErr["R2"] = errors.New("directory timeout")

	subs, err := NewResolver(dir, dir).Subordinates(ctx, "manager")
	require.NoError(t, err)

	// Fails toward deny: the unreadable branch is simply absent.
	assert.Contains(t, subs, "a")
	assert.NotContains(t, subs, "b")
}

func TestResolver_ChildLookupFailureSkipsBranch(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	dir := newFakeDirectory()
	dir.addRole("R1", "R0")
	dir.addRole("R2", "R1")
	dir.addUser("manager", "R0")
	dir.addUser("a", "R1")
	dir.addUser("b", "R2")
	dir.childErr["R1"] = errors.New("directory timeout")

	subs, err := NewResolver(dir, dir).Subordinates(ctx, "manager")
	require.NoError(t, err)

	assert.Contains(t, subs, "a")
	assert.NotContains(t, subs, "b")
}
