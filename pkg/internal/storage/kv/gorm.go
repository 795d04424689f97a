package kv

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// kvEntry 单表键值模型，值带统一的 TTL 包装.
type kvEntry struct {
	K string `gorm:"column:k;primaryKey;size:512"`
	V []byte `gorm:"column:v"`
}

func (kvEntry) TableName() string {
	return "kv_entries"
}

// GormKV 基于关系数据库（gorm）的 KV 实现，复用应用的数据库连接.
type GormKV struct {
	db *gorm.DB
}

// NewGormKV 创建 gorm KV 实例，config 为已初始化的 *gorm.DB.
func NewGormKV(ctx context.Context, config any) (KVStore, error) {
	gdb, ok := config.(*gorm.DB)
	if !ok || gdb == nil {
		return nil, fmt.Errorf("invalid gorm config: expected *gorm.DB")
	}

	if err := gdb.WithContext(ctx).AutoMigrate(&kvEntry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate kv table: %w", err)
	}

	return &GormKV{db: gdb}, nil
}

// Get 获取键的值，过期键惰性删除.
func (g *GormKV) Get(ctx context.Context, key string) ([]byte, error) {
	var entry kvEntry

	err := g.db.WithContext(ctx).First(&entry, "k = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get key: %w", err)
	}

	val, expired, _, derr := decodeWithTTL(entry.V, time.Now())
	if derr != nil {
		return nil, derr
	}

	if expired {
		_ = g.db.WithContext(ctx).Delete(&kvEntry{}, "k = ?", key).Error

		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}

	return val, nil
}

// Set 设置键的值，存在则覆盖.
func (g *GormKV) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	encoded, _, err := encodeWithTTL(value, ttl)
	if err != nil {
		return err
	}

	entry := kvEntry{K: key, V: encoded}

	err = g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "k"}},
		DoUpdates: clause.AssignmentColumns([]string{"v"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("failed to set key: %w", err)
	}

	return nil
}

// Delete 删除键.
func (g *GormKV) Delete(ctx context.Context, key string) error {
	err := g.db.WithContext(ctx).Delete(&kvEntry{}, "k = ?", key).Error
	if err != nil {
		return fmt.Errorf("failed to delete key: %w", err)
	}

	return nil
}

// Exists 检查键是否存在.
func (g *GormKV) Exists(ctx context.Context, key string) (bool, error) {
	_, err := g.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	return true, nil
}

// Keys 获取匹配模式的键，通配符 * 映射为 SQL LIKE.
func (g *GormKV) Keys(ctx context.Context, pattern string) ([]string, error) {
	keys := make([]string, 0)

	q := g.db.WithContext(ctx).Model(&kvEntry{})
	if pattern != "" {
		q = q.Where("k LIKE ?", strings.ReplaceAll(pattern, "*", "%"))
	}

	if err := q.Pluck("k", &keys).Error; err != nil {
		return nil, fmt.Errorf("failed to get keys: %w", err)
	}

	return keys, nil
}

// Close 关闭存储（连接由数据库客户端管理）.
func (g *GormKV) Close() error {
	return nil
}

func init() {
	RegisterKVFactory(KVTypeGorm, NewGormKV)
}
