package tokenpkg

import (
	"errors"
	"testing"
	"time"

	"github.com/chris7683/CAEAPP/pkg/randompkg"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestPasetoMaker(t *testing.T) {
	t.Parallel()

	secretKey := randompkg.String(32)

	maker, err := NewPasetoMaker(secretKey)
	if err != nil {
		t.Fatalf("NewPasetoMaker(%v) returned error: %v", secretKey, err)
	}

	userID := randompkg.UserID()
	duration := time.Minute

	token, payload, err := maker.CreateToken(userID, duration)
	if err != nil {
		t.Errorf("maker.CreateToken(%v, %v) returned error: %v", userID, duration, err)
	}

	_, err = maker.VerifyToken(token)
	if err != nil {
		t.Errorf("maker.VerifyToken(%v) returned error: %v", token, err)
	}

	want := &Payload{
		UserID:    userID,
		IssuedAt:  time.Now(),
		ExpiredAt: time.Now().Add(duration),
	}

	ignore := cmpopts.IgnoreFields(Payload{}, "ID")
	delta := cmpopts.EquateApproxTime(time.Minute)

	if diff := cmp.Diff(payload, want, ignore, delta); diff != "" {
		t.Errorf("maker.CreateToken(%v, %v) returned unexpected diff: %v", userID, duration, diff)
	}
}

func TestExpiredPasetoToken(t *testing.T) {
	t.Parallel()

	secretKey := randompkg.String(32)

	maker, err := NewPasetoMaker(randompkg.String(32))
	if err != nil {
		t.Fatalf("NewPasetoMaker(%v) returned error: %v", secretKey, err)
	}

	userID := randompkg.UserID()
	duration := -time.Minute

	token, _, err := maker.CreateToken(userID, duration)
	if err != nil {
		t.Errorf("maker.CreateToken(%v, %v) returned error: %v", userID, duration, err)
	}

	_, err = maker.VerifyToken(token)
	if err != ErrExpiredToken {
		t.Errorf("maker.VerifyToken(%v) returned unexpected error: %v", token, err)
	}
}

func TestNewPasetoMakerKeySize(t *testing.T) {
	t.Parallel()

	got, err := NewPasetoMaker(randompkg.String(16))
	if err == nil {
		t.Errorf("NewPasetoMaker(short key) returned nil error")
	}

	if got != nil {
		t.Errorf("PasetoMaker = %+v, want nil", got)
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	key := randompkg.String(32)

	testCases := []struct {
		name      string
		tokenType string
		wantErr   bool
	}{
		{name: "Paseto", tokenType: TypePaseto},
		{name: "JWT", tokenType: TypeJWT},
		{name: "DefaultsToPaseto", tokenType: ""},
		{name: "Unsupported", tokenType: "saml", wantErr: true},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			maker, err := New(tc.tokenType, key)
			if tc.wantErr {
				if err == nil {
					t.Errorf("New(%q) returned nil error", tc.tokenType)
				}

				return
			}

			if err != nil {
				t.Fatalf("New(%q) returned error: %v", tc.tokenType, err)
			}

			token, _, err := maker.CreateToken(42, time.Minute)
			if err != nil {
				t.Fatalf("CreateToken returned error: %v", err)
			}

			payload, err := maker.VerifyToken(token)
			if err != nil {
				t.Fatalf("VerifyToken returned error: %v", err)
			}

			if payload.UserID != 42 {
				t.Errorf("payload.UserID = %d, want 42", payload.UserID)
			}
		})
	}
}

func TestPasetoTokenWithoutUserID(t *testing.T) {
	t.Parallel()

	secretKey := randompkg.String(32)

	maker, err := NewPasetoMaker(secretKey)
	if err != nil {
		t.Fatalf("NewPasetoMaker(%v) returned error: %v", secretKey, err)
	}

	if _, _, err := maker.CreateToken(0, time.Minute); !errors.Is(err, ErrInvalidUserID) {
		t.Errorf("maker.CreateToken(0, %v) returned error: %v, want %v", time.Minute, err, ErrInvalidUserID)
	}

	payload := &Payload{UserID: -7, IssuedAt: time.Now(), ExpiredAt: time.Now().Add(time.Minute)}

	token, err := maker.paseto.Encrypt(maker.symmetricKey, payload, nil)
	if err != nil {
		t.Fatalf("Encrypt returned error: %v", err)
	}

	if _, err := maker.VerifyToken(token); err != ErrInvalidToken {
		t.Errorf("maker.VerifyToken(%v) returned error: %v, want %v", token, err, ErrInvalidToken)
	}
}
