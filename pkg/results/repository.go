package results

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"hashbench/pkg/timing"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrRunNotFound = errors.New("run not found")

// DefaultLimit 是列表查询的默认条数
const DefaultLimit = 20

// Repository 封装所有对结果库的操作
type Repository struct {
	db *DB
}

func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// NewRun 构造一条记录，measurements 按标签存成 JSON 对象
func NewRun(command string, measurements []timing.Measurement) (*Run, error) {
	m := make(map[string]float64, len(measurements))
	for _, x := range measurements {
		m[x.Label] = x.Millis
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal measurements: %w", err)
	}
	return &Run{
		Command:      command,
		Measurements: datatypes.JSON(data),
		CreatedAt:    time.Now(),
	}, nil
}

// RecordRun 写入一条记录
func (r *Repository) RecordRun(ctx context.Context, run *Run) error {
	if err := r.db.GetConn().WithContext(ctx).Create(run).Error; err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	return nil
}

func (r *Repository) GetRun(ctx context.Context, id uint) (*Run, error) {
	var run Run
	err := r.db.GetConn().WithContext(ctx).First(&run, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// ListRuns 按时间倒序返回最近的记录
func (r *Repository) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	return r.FindRunsByCommand(ctx, "", limit)
}

// FindRunsByCommand command 为空时不过滤
func (r *Repository) FindRunsByCommand(ctx context.Context, command string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	q := r.db.GetConn().WithContext(ctx)
	if command != "" {
		q = q.Where("command = ?", command)
	}

	var runs []Run
	err := q.Order("created_at DESC").Order("id DESC").
		Limit(limit).
		Find(&runs).Error
	return runs, err
}

// DecodeMeasurements 把 JSON 还原为 label -> 毫秒
func (run *Run) DecodeMeasurements() (map[string]float64, error) {
	m := map[string]float64{}
	if len(run.Measurements) == 0 {
		return m, nil
	}
	if err := json.Unmarshal(run.Measurements, &m); err != nil {
		return nil, fmt.Errorf("corrupted measurements for run %d: %w", run.ID, err)
	}
	return m, nil
}
