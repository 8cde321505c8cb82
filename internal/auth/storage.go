package auth

type Storage interface {
	Store(session *Session) error
	Get() (*Session, error)
	Delete() error
	Source() SessionSource
}

// KeyringStorage implements Storage using the system keyring
type KeyringStorage struct{}

func NewKeyringStorage() *KeyringStorage {
	return &KeyringStorage{}
}

func (k *KeyringStorage) Store(session *Session) error {
	return storeSessionInKeyring(session)
}

func (k *KeyringStorage) Get() (*Session, error) {
	return getSessionFromKeyring()
}

func (k *KeyringStorage) Delete() error {
	return deleteSessionFromKeyring()
}

func (k *KeyringStorage) Source() SessionSource {
	return KeyringSessionSource
}

// PlainTextStorage implements Storage using a plain text file
type PlainTextStorage struct{}

func NewPlainTextStorage() *PlainTextStorage {
	return &PlainTextStorage{}
}

func (p *PlainTextStorage) Store(session *Session) error {
	return storeSessionInPlainText(session)
}

func (p *PlainTextStorage) Get() (*Session, error) {
	return getSessionFromPlainText()
}

func (p *PlainTextStorage) Delete() error {
	return deleteSessionFromPlainText()
}

func (p *PlainTextStorage) Source() SessionSource {
	return PlainTextSessionSource
}
