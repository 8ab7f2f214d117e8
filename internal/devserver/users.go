package devserver

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken    = errors.New("email already registered")
	ErrUserNameTaken = errors.New("username already registered")
	ErrUserNotFound  = errors.New("user not found")
	ErrBadOTP        = errors.New("invalid otp")
)

// User is a backend account.
type User struct {
	ID           string
	FullName     string
	PhoneNumber  string
	Email        string
	UserName     string
	PasswordHash []byte
	Premium      bool
	Verified     bool
	otp          string
}

// userRegistry is a mutex-guarded in-memory user table.
type userRegistry struct {
	mu      sync.Mutex
	byName  map[string]*User
	byEmail map[string]*User
}

func newUserRegistry() *userRegistry {
	return &userRegistry{byName: map[string]*User{}, byEmail: map[string]*User{}}
}

func normEmail(e string) string { return strings.ToLower(strings.TrimSpace(e)) }

func (r *userRegistry) add(u *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[normEmail(u.Email)]; ok {
		return ErrEmailTaken
	}
	if _, ok := r.byName[u.UserName]; ok {
		return ErrUserNameTaken
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	r.byEmail[normEmail(u.Email)] = u
	r.byName[u.UserName] = u
	return nil
}

// authenticate returns a copy of the user when the password matches.
func (r *userRegistry) authenticate(userName, password string) (User, error) {
	r.mu.Lock()
	u, ok := r.byName[userName]
	var snapshot User
	if ok {
		snapshot = *u
	}
	r.mu.Unlock()

	if !ok {
		return User{}, ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword(snapshot.PasswordHash, []byte(password)); err != nil {
		return User{}, ErrUserNotFound
	}
	return snapshot, nil
}

func (r *userRegistry) verify(email, otp string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byEmail[normEmail(email)]
	if !ok {
		return ErrUserNotFound
	}
	if u.Verified {
		return nil
	}
	if u.otp == "" || u.otp != otp {
		return ErrBadOTP
	}
	u.Verified = true
	u.otp = ""
	return nil
}

func (r *userRegistry) pendingOTP(email string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byEmail[normEmail(email)]
	if !ok || u.Verified {
		return "", false
	}
	return u.otp, true
}

func hashPassword(password string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
}

// newOTP returns a zero-padded six digit code.
func newOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
