package redis

import "fmt"

// key returns the Redis key for a logical store key
func (s *Storage) key(logical string) string {
	if s.cfg.KeyPrefix == "" {
		return logical
	}
	return fmt.Sprintf("%s:%s", s.cfg.KeyPrefix, logical)
}
