package redis

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"startup-directory.backend/internal/domain/entities"
	domainerrors "startup-directory.backend/internal/domain/errors"
	"startup-directory.backend/pkg/crypto"
)

const draftKeyPrefix = "draft:"

// DraftStore keeps wizard drafts in Redis, sealed with AES-GCM since they carry contact details
type DraftStore struct {
	encryptionKey []byte
	ttl           time.Duration
}

var (
	setDraftValue    = Set
	getDraftValue    = Get
	delDraftValue    = Del
	marshalDraftJSON = json.Marshal
)

// NewDraftStore derives the encryption key from secret
func NewDraftStore(secret string, ttl time.Duration) (*DraftStore, error) {
	key, err := crypto.DeriveKey(secret, "startup-directory/drafts")
	if err != nil {
		return nil, err
	}
	return &DraftStore{encryptionKey: key, ttl: ttl}, nil
}

// Save stores draft, refreshing its TTL
func (s *DraftStore) Save(ctx context.Context, draft *entities.Draft) error {
	if draft == nil || draft.ID == "" {
		return domainerrors.ErrInvalidInput
	}
	payload, err := marshalDraftJSON(draft)
	if err != nil {
		return fmt.Errorf("marshal draft: %w", err)
	}

	sealed, err := s.encrypt(payload)
	if err != nil {
		return err
	}

	return setDraftValue(ctx, draftKeyPrefix+draft.ID, sealed, s.ttl)
}

// Load returns the stored draft or ErrNotFound
func (s *DraftStore) Load(ctx context.Context, id string) (*entities.Draft, error) {
	sealed, err := getDraftValue(ctx, draftKeyPrefix+id)
	if err != nil {
		if IsNil(err) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}

	payload, err := s.decrypt(sealed)
	if err != nil {
		return nil, err
	}

	var draft entities.Draft
	if err := json.Unmarshal(payload, &draft); err != nil {
		return nil, fmt.Errorf("unmarshal draft: %w", err)
	}
	return &draft, nil
}

// Clear removes the draft, a missing key is not an error
func (s *DraftStore) Clear(ctx context.Context, id string) error {
	return delDraftValue(ctx, draftKeyPrefix+id)
}

func (s *DraftStore) encrypt(plaintext []byte) (string, error) {
	block, err := aes.NewCipher(s.encryptionKey)
	if err != nil {
		return "", err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	ciphertext := gcm.Seal(nonce, nonce, plaintext, nil)
	return hex.EncodeToString(ciphertext), nil
}

func (s *DraftStore) decrypt(ciphertextHex string) ([]byte, error) {
	ciphertext, err := hex.DecodeString(ciphertextHex)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(s.encryptionKey)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	if len(ciphertext) < gcm.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}

	nonce, ciphertext := ciphertext[:gcm.NonceSize()], ciphertext[gcm.NonceSize():]
	return gcm.Open(nil, nonce, ciphertext, nil)
}
