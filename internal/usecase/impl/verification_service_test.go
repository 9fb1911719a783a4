package impl

import (
	"context"
	"testing"
	"time"

	"shoplist/config"
	domainerrors "shoplist/internal/domain/errors"
	"shoplist/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVerificationServiceForTest(f *fixtures, gen *fixedGenerator, sender *captureSender, cfg *config.Config) usecase.VerificationUsecase {
	return NewVerificationService(VerificationServiceParams{
		TxManager: f.tx,
		Generator: gen,
		Sender:    sender,
		Hasher:    fakeHasher{},
		Config:    cfg,
		Logger:    discardLogger(),
	})
}

// backdateCode plants a pending code on the stored owner, issued sentAgo in
// the past.
func backdateCode(f *fixtures, ownerID uuid.UUID, code string, sentAgo time.Duration) {
	sent := time.Now().Add(-sentAgo)
	stored := f.owners.owners[ownerID]
	stored.VerificationCode = code
	stored.VerificationCodeSent = &sent
}

func TestRequestCode(t *testing.T) {
	f := newFixtures()
	seeded := f.seedOwner("heiko")
	sender := &captureSender{}
	srv := newVerificationServiceForTest(f, &fixedGenerator{code: "123456"}, sender, nil)

	err := srv.RequestCode(context.Background(), seeded.ID, "0160333333")

	require.NoError(t, err)
	assert.Equal(t, 1, sender.calls)
	assert.Equal(t, "0160333333", sender.phonenumber)
	assert.Equal(t, "123456", sender.code)

	stored := f.owners.owners[seeded.ID]
	assert.Equal(t, "123456", stored.VerificationCode)
	assert.Equal(t, "0160333333", stored.Phonenumber, "the code binds the phone number it went to")
	require.NotNil(t, stored.VerificationCodeSent)
	assert.WithinDuration(t, time.Now(), *stored.VerificationCodeSent, time.Minute)
}

func TestRequestCode_OwnerNotFound(t *testing.T) {
	f := newFixtures()
	sender := &captureSender{}
	srv := newVerificationServiceForTest(f, &fixedGenerator{code: "123456"}, sender, nil)

	err := srv.RequestCode(context.Background(), uuid.New(), "0160333333")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrOwnerNotFound))
	assert.Zero(t, sender.calls, "no code may leave the system when the save failed")
}

func TestRequestCode_SupersedesPendingCode(t *testing.T) {
	f := newFixtures()
	seeded := f.seedOwner("heiko")
	backdateCode(f, seeded.ID, "111111", 5*time.Minute)
	sender := &captureSender{}
	srv := newVerificationServiceForTest(f, &fixedGenerator{code: "222222"}, sender, nil)

	require.NoError(t, srv.RequestCode(context.Background(), seeded.ID, "0160333333"))

	stored := f.owners.owners[seeded.ID]
	assert.Equal(t, "222222", stored.VerificationCode)
}

func TestRequestCode_SenderFailureSurfaces(t *testing.T) {
	f := newFixtures()
	seeded := f.seedOwner("heiko")
	sender := &captureSender{err: errors.New("gateway down")}
	srv := newVerificationServiceForTest(f, &fixedGenerator{code: "123456"}, sender, nil)

	err := srv.RequestCode(context.Background(), seeded.ID, "0160333333")

	require.Error(t, err)
	stored := f.owners.owners[seeded.ID]
	assert.Equal(t, "123456", stored.VerificationCode, "the recorded code survives a delivery failure")
}

func TestConfirmCode(t *testing.T) {
	f := newFixtures()
	seeded := f.seedOwner("heiko")
	backdateCode(f, seeded.ID, "123456", time.Minute)
	srv := newVerificationServiceForTest(f, &fixedGenerator{}, &captureSender{}, nil)

	owner, err := srv.ConfirmCode(context.Background(), &usecase.ConfirmCodeInput{
		OwnerID:  seeded.ID,
		Code:     "123456",
		Password: "s3cret-pass",
	})

	require.NoError(t, err)
	assert.Equal(t, "hashed:s3cret-pass", owner.Password)
	assert.Empty(t, owner.VerificationCode)
	assert.Nil(t, owner.VerificationCodeSent)

	stored := f.owners.owners[seeded.ID]
	assert.Empty(t, stored.VerificationCode)
	assert.Equal(t, "hashed:s3cret-pass", stored.Password)
}

func TestConfirmCode_WithoutPassword(t *testing.T) {
	f := newFixtures()
	seeded := f.seedOwner("heiko")
	backdateCode(f, seeded.ID, "123456", time.Minute)
	srv := newVerificationServiceForTest(f, &fixedGenerator{}, &captureSender{}, nil)

	owner, err := srv.ConfirmCode(context.Background(), &usecase.ConfirmCodeInput{
		OwnerID: seeded.ID,
		Code:    "123456",
	})

	require.NoError(t, err)
	assert.Empty(t, owner.Password)
	assert.Empty(t, owner.VerificationCode)
}

func TestConfirmCode_Mismatch(t *testing.T) {
	f := newFixtures()
	seeded := f.seedOwner("heiko")
	backdateCode(f, seeded.ID, "123456", time.Minute)
	srv := newVerificationServiceForTest(f, &fixedGenerator{}, &captureSender{}, nil)

	_, err := srv.ConfirmCode(context.Background(), &usecase.ConfirmCodeInput{
		OwnerID: seeded.ID,
		Code:    "654321",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrVerificationMismatch))

	stored := f.owners.owners[seeded.ID]
	assert.Equal(t, "123456", stored.VerificationCode, "a failed attempt keeps the code pending")
}

func TestConfirmCode_Expired(t *testing.T) {
	f := newFixtures()
	seeded := f.seedOwner("heiko")
	backdateCode(f, seeded.ID, "123456", 20*time.Minute)
	srv := newVerificationServiceForTest(f, &fixedGenerator{}, &captureSender{}, nil)

	_, err := srv.ConfirmCode(context.Background(), &usecase.ConfirmCodeInput{
		OwnerID: seeded.ID,
		Code:    "123456",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrVerificationExpired))
}

func TestConfirmCode_ConfiguredTTL(t *testing.T) {
	f := newFixtures()
	seeded := f.seedOwner("heiko")
	backdateCode(f, seeded.ID, "123456", 5*time.Minute)
	cfg := &config.Config{Verification: &config.VerificationConfig{CodeTTL: time.Minute}}
	srv := newVerificationServiceForTest(f, &fixedGenerator{}, &captureSender{}, cfg)

	_, err := srv.ConfirmCode(context.Background(), &usecase.ConfirmCodeInput{
		OwnerID: seeded.ID,
		Code:    "123456",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrVerificationExpired))
}

func TestConfirmCode_MismatchWinsOverExpiry(t *testing.T) {
	f := newFixtures()
	seeded := f.seedOwner("heiko")
	backdateCode(f, seeded.ID, "123456", 20*time.Minute)
	srv := newVerificationServiceForTest(f, &fixedGenerator{}, &captureSender{}, nil)

	_, err := srv.ConfirmCode(context.Background(), &usecase.ConfirmCodeInput{
		OwnerID: seeded.ID,
		Code:    "654321",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrVerificationMismatch))
}

func TestConfirmCode_NoPendingCode(t *testing.T) {
	f := newFixtures()
	seeded := f.seedOwner("nocode")
	srv := newVerificationServiceForTest(f, &fixedGenerator{}, &captureSender{}, nil)

	_, err := srv.ConfirmCode(context.Background(), &usecase.ConfirmCodeInput{
		OwnerID: seeded.ID,
		Code:    "123456",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrVerificationMismatch))
}
