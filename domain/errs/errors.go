package errs

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors ใช้กับ errors.Is ในทุก layer
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("task not found")
	ErrStorage    = errors.New("storage failure")
)

// ValidationError เก็บข้อความ error แยกตาม field
type ValidationError struct {
	Fields map[string]string
}

// Validation สร้าง ValidationError ของ field เดียว
func Validation(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}

	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// StorageError ห่อ error จาก storage provider พร้อมชื่อ operation
type StorageError struct {
	Op  string
	Err error
}

// Storage ห่อ error ของ provider เป็น StorageError (nil ถ้า err เป็น nil)
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
