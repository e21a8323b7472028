package session

import (
	"sync"

	"assoblog/internal/entity"
	"assoblog/pkg/logger"
)

// IdentityStore is the credential service the session context delegates to.
type IdentityStore interface {
	SignIn(email, password string) (*entity.Session, error)
	SignUp(email, password string) (*entity.Session, error)
	SignOut(token string) error
	CurrentSession(token string) (*entity.Session, error)
}

// Snapshot is an immutable view of the context state handed to subscribers.
// RoleResolved distinguishes "no role yet, lookup in flight" from "resolved
// to viewer".
type Snapshot struct {
	Session      *entity.Session
	Role         entity.Role
	RoleResolved bool
	Version      uint64
}

func (s Snapshot) Authenticated() bool { return s.Session != nil }

// Context is the single owned holder of the current session and its derived
// role. State mutates only by replacement, each mutation bumps the version
// and notifies every subscriber. It is the one source of truth consulted by
// authorization checks on the client side.
type Context struct {
	store    IdentityStore
	resolver RoleResolver
	logger   *logger.Logger

	mu           sync.Mutex
	sess         *entity.Session
	role         entity.Role
	roleResolved bool
	version      uint64
	subs         map[int]func(Snapshot)
	nextSubID    int
}

func NewContext(store IdentityStore, resolver RoleResolver, logger *logger.Logger) *Context {
	return &Context{
		store:    store,
		resolver: resolver,
		logger:   logger,
		subs:     make(map[int]func(Snapshot)),
	}
}

// Initialize bootstraps the context from a previously stored credential. When
// a session exists it is published immediately with the role still
// unresolved, and the role lookup completes in the background so public
// content is never blocked on it. A second notification follows once the role
// lands. A stale lookup result (the state moved on meanwhile) is dropped.
func (c *Context) Initialize(token string) error {
	sess, err := c.store.CurrentSession(token)
	if err != nil {
		c.logger.Warn("Session bootstrap failed: %v", err)
		c.replace(nil, "", false)
		return err
	}
	if sess == nil {
		c.replace(nil, "", false)
		return nil
	}

	version := c.replace(sess, "", false)

	go func() {
		role := c.resolver.Resolve(sess.Identity.ID)
		c.completeResolution(version, role)
	}()

	return nil
}

// SignIn delegates to the identity store. Failure leaves the current state
// untouched and returns the store's typed error.
func (c *Context) SignIn(email, password string) error {
	sess, err := c.store.SignIn(email, password)
	if err != nil {
		return err
	}

	role := c.resolver.Resolve(sess.Identity.ID)
	c.replace(sess, role, true)
	return nil
}

// SignUp creates the account and session. The user record behind the role is
// provisioned out of band, so the resolver typically reads the fresh identity
// as viewer until the record appears.
func (c *Context) SignUp(email, password string) error {
	sess, err := c.store.SignUp(email, password)
	if err != nil {
		return err
	}

	role := c.resolver.Resolve(sess.Identity.ID)
	c.replace(sess, role, true)
	return nil
}

// SignOut revokes the session at the store and clears local state. Local
// state is cleared even when revocation fails: the user asked to leave.
func (c *Context) SignOut() error {
	c.mu.Lock()
	sess := c.sess
	c.mu.Unlock()

	if sess == nil {
		return nil
	}

	err := c.store.SignOut(sess.Token)
	if err != nil {
		c.logger.Warn("Session revocation failed: %v", err)
	}
	c.replace(nil, "", false)
	return err
}

// InvalidateRole re-resolves the role after an admin mutated it for the given
// identity in this client. Mutations for other identities are ignored.
func (c *Context) InvalidateRole(identityID string) {
	c.mu.Lock()
	if c.sess == nil || c.sess.Identity.ID != identityID {
		c.mu.Unlock()
		return
	}
	sess := c.sess
	c.mu.Unlock()

	role := c.resolver.Resolve(sess.Identity.ID)

	c.mu.Lock()
	if c.sess == nil || c.sess.Identity.ID != identityID {
		c.mu.Unlock()
		return
	}
	c.role = role
	c.roleResolved = true
	c.version++
	snap, subs := c.snapshotAndSubsLocked()
	c.mu.Unlock()

	notify(subs, snap)
}

// Subscribe registers fn for every state change and returns an unsubscribe
// func. Dependents re-render on notification instead of polling.
func (c *Context) Subscribe(fn func(Snapshot)) func() {
	c.mu.Lock()
	id := c.nextSubID
	c.nextSubID++
	c.subs[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

func (c *Context) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		Session:      c.sess,
		Role:         c.role,
		RoleResolved: c.roleResolved,
		Version:      c.version,
	}
}

// replace swaps the whole state, bumps the version, notifies, and returns the
// new version.
func (c *Context) replace(sess *entity.Session, role entity.Role, resolved bool) uint64 {
	c.mu.Lock()
	c.sess = sess
	c.role = role
	c.roleResolved = resolved
	c.version++
	version := c.version
	snap, subs := c.snapshotAndSubsLocked()
	c.mu.Unlock()

	notify(subs, snap)
	return version
}

// completeResolution applies a background role lookup, unless the state has
// already moved past the version the lookup was started for.
func (c *Context) completeResolution(version uint64, role entity.Role) {
	c.mu.Lock()
	if c.version != version {
		c.mu.Unlock()
		return
	}
	c.role = role
	c.roleResolved = true
	c.version++
	snap, subs := c.snapshotAndSubsLocked()
	c.mu.Unlock()

	notify(subs, snap)
}

func (c *Context) snapshotAndSubsLocked() (Snapshot, []func(Snapshot)) {
	snap := Snapshot{
		Session:      c.sess,
		Role:         c.role,
		RoleResolved: c.roleResolved,
		Version:      c.version,
	}
	subs := make([]func(Snapshot), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	return snap, subs
}

func notify(subs []func(Snapshot), snap Snapshot) {
	for _, fn := range subs {
		fn(snap)
	}
}
