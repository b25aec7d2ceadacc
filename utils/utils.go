package utils

import (
	"crypto/rand"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/oklog/ulid"
	"github.com/spf13/cobra"
)

var (
	ulidMutex = sync.Mutex{}
	entropy   = ulid.Monotonic(rand.Reader, 0)

	validate = validator.New()
)

// ULID returns a lexicographically sortable unique identifier; safe for
// concurrent use.
func ULID() string {
	ulidMutex.Lock()
	defer ulidMutex.Unlock()

	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

// IsValidSubcommand checks if the passed subcommand is supported by the parent command
func IsValidSubcommand(available []*cobra.Command, sub string) bool {
	for _, s := range available {
		if sub == s.Use || sub == s.CalledAs() {
			return true
		}
	}
	return false
}

func ExistInArray[T ~string | int | int8 | int16 | int32 | int64 | float32 | float64](set []T, value T) bool {
	_, found := ArrayContains(set, func(elem T) bool {
		return elem == value
	})

	return found
}

func ArrayContains[T any](set []T, match func(elem T) bool) (int, bool) {
	for idx, elem := range set {
		if match(elem) {
			return idx, true
		}
	}

	return -1, false
}

// returns cond ? a ; b (note: it is not function ternary)
func Ternary(cond bool, a, b any) any {
	if cond {
		return a
	}
	return b
}

// Unmarshal serializes and deserializes any from into the object
// return error if occurred
func Unmarshal(from, object any) error {
	b, err := json.Marshal(from)
	if err != nil {
		return fmt.Errorf("error marshaling object: %s", err)
	}
	err = json.Unmarshal(b, object)
	if err != nil {
		return fmt.Errorf("error unmarshalling from object: %s", err)
	}

	return nil
}

// Validate runs struct-tag validation on the object
func Validate(object any) error {
	return validate.Struct(object)
}

func CheckIfFilesExists(files ...string) error {
	for _, file := range files {
		_, err := os.Stat(file)
		if os.IsNotExist(err) {
			return fmt.Errorf("%s does not exist: %s", file, err)
		}
	}

	return nil
}

func UnmarshalFile(file string, dest any) error {
	if err := CheckIfFilesExists(file); err != nil {
		return err
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("failed to read %s: %s", file, err)
	}

	err = json.Unmarshal(data, dest)
	if err != nil {
		return fmt.Errorf("failed to unmarshal file[%s]: %s", file, err)
	}
	return nil
}
