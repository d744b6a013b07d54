package codec

import (
	"archive/zip"
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"io"

	"github.com/pannpers/go-apperr/apperr"
	"github.com/pannpers/go-apperr/apperr/codes"
)

// minSaveSize is the smallest archive the upstream service ever returns for
// a real save; anything at or below it is treated as corrupt.
const minSaveSize = 30

// saveAESKey is the fixed AES-128 key the client encrypts save files with.
// It never rotates and is not user- or install-specific.
var saveAESKey = []byte{
	0xe7, 0x65, 0x62, 0xa7, 0x39, 0xfc, 0x48, 0x41,
	0xa9, 0x2c, 0xc7, 0xa9, 0x39, 0xfc, 0x40, 0x28,
}

// saveAESIV is the all-zero initialization vector used by every save file,
// matching the upstream client's own CBC configuration.
var saveAESIV = make([]byte, 16)

// Unzip extracts a save archive into a map of file name to raw (still
// encrypted) contents. Missing expected members are tolerated by the
// caller; unexpected extra members are kept and the caller logs a warning.
func Unzip(blob []byte) (map[string][]byte, error) {
	if len(blob) <= minSaveSize {
		return nil, apperr.New(codes.DataLoss, "save archive below minimum valid size")
	}

	reader, err := zip.NewReader(bytes.NewReader(blob), int64(len(blob)))
	if err != nil {
		return nil, apperr.Wrap(err, codes.DataLoss, "failed to open save archive")
	}

	files := make(map[string][]byte, len(reader.File))
	for _, f := range reader.File {
		rc, err := f.Open()
		if err != nil {
			return nil, apperr.Wrap(err, codes.DataLoss, "failed to open save archive member")
		}
		contents, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, apperr.Wrap(err, codes.DataLoss, "failed to read save archive member")
		}
		files[f.Name] = contents
	}

	return files, nil
}

// DecryptFile decrypts one save file's contents. The first byte is the
// schema-version header and is returned unconsumed; the remainder is the
// AES-128-CBC/PKCS7 ciphertext, which unpads directly to the plain binary
// record — the client never zlib-compresses save members.
func DecryptFile(raw []byte) (header byte, plain []byte, err error) {
	if len(raw) < 1 {
		return 0, nil, apperr.New(codes.DataLoss, "save file member is empty")
	}
	header = raw[0]
	ciphertext := raw[1:]

	plain, err = aesDecrypt(ciphertext)
	if err != nil {
		return header, nil, apperr.Wrap(err, codes.DataLoss, "failed to decrypt save file member")
	}

	return header, plain, nil
}

func aesDecrypt(ciphertext []byte) ([]byte, error) {
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return nil, apperr.New(codes.DataLoss, "ciphertext is not a multiple of the AES block size")
	}

	block, err := aes.NewCipher(saveAESKey)
	if err != nil {
		return nil, err
	}

	out := make([]byte, len(ciphertext))
	mode := cipher.NewCBCDecrypter(block, saveAESIV)
	mode.CryptBlocks(out, ciphertext)

	return pkcs7Unpad(out)
}

func pkcs7Unpad(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, apperr.New(codes.DataLoss, "cannot unpad empty data")
	}
	padLen := int(data[len(data)-1])
	if padLen == 0 || padLen > aes.BlockSize || padLen > len(data) {
		return nil, apperr.New(codes.DataLoss, "invalid PKCS7 padding")
	}
	for _, b := range data[len(data)-padLen:] {
		if int(b) != padLen {
			return nil, apperr.New(codes.DataLoss, "invalid PKCS7 padding")
		}
	}
	return data[:len(data)-padLen], nil
}
