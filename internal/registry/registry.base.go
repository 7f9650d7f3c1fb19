// Package registry cung cấp registry generic, an toàn đồng thời,
// dùng để giữ các tài nguyên chia sẻ theo tên (collections, databases).
package registry

import (
	"fmt"
	"sync"
)

// Registry quản lý các item theo tên, an toàn cho truy cập đồng thời
type Registry[T any] struct {
	mu    sync.RWMutex
	items map[string]T
}

// NewRegistry tạo mới một registry rỗng
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{
		items: make(map[string]T),
	}
}

// Register đăng ký một item với tên cho trước.
// Trả về lỗi nếu tên đã tồn tại.
func (r *Registry[T]) Register(name string, item T) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[name]; exists {
		return fmt.Errorf("item đã tồn tại trong registry: %s", name)
	}
	r.items[name] = item
	return nil
}

// Get trả về item theo tên và cờ tồn tại
func (r *Registry[T]) Get(name string) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, exists := r.items[name]
	return item, exists
}

// GetOrCreate trả về item theo tên, tạo mới bằng creator nếu chưa có
func (r *Registry[T]) GetOrCreate(name string, creator func() T) T {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item, exists := r.items[name]; exists {
		return item
	}
	item := creator()
	r.items[name] = item
	return item
}

// Remove xóa item theo tên
func (r *Registry[T]) Remove(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, name)
}

// Count trả về số lượng item đang được đăng ký
func (r *Registry[T]) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.items)
}

// Names trả về danh sách tên các item đã đăng ký
func (r *Registry[T]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.items))
	for name := range r.items {
		names = append(names, name)
	}
	return names
}
