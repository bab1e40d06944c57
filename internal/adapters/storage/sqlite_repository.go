package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"tempo/internal/domain"
	"tempo/internal/logging"
	"tempo/internal/ports"
)

// SQLiteRepository implements ports.Repository using GORM
type SQLiteRepository struct {
	db *gorm.DB
}

// Verify interface compliance at compile time
var _ ports.Repository = (*SQLiteRepository)(nil)

// gormLogger wraps the tempo logger for GORM
type gormLogger struct {
	level logger.LogLevel
}

func (l *gormLogger) LogMode(level logger.LogLevel) logger.Interface {
	return &gormLogger{level: level}
}

func (l *gormLogger) Info(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Info {
		logging.Logger.Info(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Warn(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Warn {
		logging.Logger.Warn(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Error(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Error {
		logging.Logger.Error(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level < logger.Info {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logging.Logger.Error("gorm query error",
			"error", err,
			"duration", elapsed,
			"sql", sql,
			"rows", rows,
		)
	} else if elapsed > 200*time.Millisecond {
		logging.Logger.Warn("slow query",
			"duration", elapsed,
			"sql", sql,
			"rows", rows,
		)
	} else {
		logging.Logger.Debug("gorm query",
			"duration", elapsed,
			"sql", sql,
			"rows", rows,
		)
	}
}

func newGormLogger() logger.Interface {
	if os.Getenv("TEMPO_DEBUG") == "1" {
		return (&gormLogger{}).LogMode(logger.Info)
	}
	return (&gormLogger{}).LogMode(logger.Silent)
}

// NewSQLiteRepository creates a new SQLiteRepository
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	// Expand home directory if present
	if len(dbPath) > 0 && dbPath[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(homeDir, dbPath[1:])
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	// Open database with WAL mode; everything is stored in UTC
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		PrepareStmt: false,
		NowFunc:     func() time.Time { return time.Now().UTC() },
		Logger:      newGormLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA busy_timeout=5000")
	db.Exec("PRAGMA synchronous=NORMAL")
	db.Exec("PRAGMA foreign_keys=ON")

	if err := db.AutoMigrate(&ActivityModel{}, &TimeEntryModel{}, &HabitLogModel{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	// Configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(0)

	return &SQLiteRepository{db: db}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Get implements ActivityReader.Get
func (r *SQLiteRepository) Get(ctx context.Context, id uint) (*domain.Activity, error) {
	var model ActivityModel
	err := withRetry(func() error {
		return r.db.WithContext(ctx).First(&model, id).Error
	}, 3)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: activity %d", domain.ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}

	activity := activityModelToDomain(model)
	return &activity, nil
}

// Hierarchy implements ActivityReader.Hierarchy. The snapshot is sorted by
// name at every level; activities whose parent row is missing are promoted
// to the root rather than dropped.
func (r *SQLiteRepository) Hierarchy(ctx context.Context) ([]*domain.ActivityNode, error) {
	var models []ActivityModel
	err := withRetry(func() error {
		return r.db.WithContext(ctx).Find(&models).Error
	}, 3)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}

	nodes := make(map[uint]*domain.ActivityNode, len(models))
	for _, m := range models {
		nodes[m.ID] = &domain.ActivityNode{Activity: activityModelToDomain(m)}
	}

	var roots []*domain.ActivityNode
	for _, node := range nodes {
		if node.ParentID == nil {
			roots = append(roots, node)
			continue
		}
		parent, ok := nodes[*node.ParentID]
		if !ok {
			logging.Logger.Warn("activity has missing parent, promoting to root",
				"activity_id", node.ID, "parent_id", *node.ParentID)
			roots = append(roots, node)
			continue
		}
		parent.Children = append(parent.Children, node)
	}

	sortNodesRecursive(roots)
	return roots, nil
}

func sortNodesRecursive(nodes []*domain.ActivityNode) {
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].Name < nodes[j].Name })
	for _, n := range nodes {
		if len(n.Children) > 0 {
			sortNodesRecursive(n.Children)
		}
	}
}

// Descendants implements ActivityReader.Descendants. Breadth-first walk of
// the parent/child adjacency starting at id (id included), guarded against
// revisiting rows in case of malformed data.
func (r *SQLiteRepository) Descendants(ctx context.Context, id uint) ([]uint, error) {
	type rel struct {
		ID       uint
		ParentID *uint
	}
	var rels []rel
	err := withRetry(func() error {
		return r.db.WithContext(ctx).Model(&ActivityModel{}).Select("id", "parent_id").Find(&rels).Error
	}, 3)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}

	children := make(map[uint][]uint, len(rels))
	known := make(map[uint]bool, len(rels))
	for _, rl := range rels {
		known[rl.ID] = true
		if rl.ParentID != nil {
			children[*rl.ParentID] = append(children[*rl.ParentID], rl.ID)
		}
	}
	if !known[id] {
		return nil, fmt.Errorf("%w: activity %d", domain.ErrNotFound, id)
	}

	visited := make(map[uint]bool)
	queue := []uint{id}
	var result []uint
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if visited[current] {
			continue
		}
		visited[current] = true
		result = append(result, current)
		queue = append(queue, children[current]...)
	}
	return result, nil
}

// checkNameExists reports whether a sibling with this name already exists
// under parentID (nil means the root group), excluding excludeID
func checkNameExists(tx *gorm.DB, name string, parentID *uint, excludeID uint) (bool, error) {
	query := tx.Model(&ActivityModel{}).Where("name = ?", name)
	if parentID == nil {
		query = query.Where("parent_id IS NULL")
	} else {
		query = query.Where("parent_id = ?", *parentID)
	}
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Add implements ActivityWriter.Add
func (r *SQLiteRepository) Add(ctx context.Context, name string, parentID *uint) (uint, error) {
	var newID uint
	err := withRetry(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if parentID != nil {
				var count int64
				if err := tx.Model(&ActivityModel{}).Where("id = ?", *parentID).Count(&count).Error; err != nil {
					return fmt.Errorf("%w: %w", domain.ErrStorage, err)
				}
				if count == 0 {
					return fmt.Errorf("%w: parent activity %d", domain.ErrNotFound, *parentID)
				}
			}

			exists, err := checkNameExists(tx, name, parentID, 0)
			if err != nil {
				return fmt.Errorf("%w: %w", domain.ErrStorage, err)
			}
			if exists {
				return fmt.Errorf("%w: %q", domain.ErrDuplicateName, name)
			}

			model := ActivityModel{Name: name, ParentID: parentID}
			if err := tx.Create(&model).Error; err != nil {
				return fmt.Errorf("%w: %w", domain.ErrStorage, err)
			}
			newID = model.ID
			return nil
		})
	}, 3)
	if err != nil {
		return 0, err
	}
	return newID, nil
}

// Rename implements ActivityWriter.Rename. Sibling uniqueness is checked
// within the activity's current parent group.
func (r *SQLiteRepository) Rename(ctx context.Context, id uint, newName string) error {
	return withRetry(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var model ActivityModel
			if err := tx.First(&model, id).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: activity %d", domain.ErrNotFound, id)
				}
				return fmt.Errorf("%w: %w", domain.ErrStorage, err)
			}

			exists, err := checkNameExists(tx, newName, model.ParentID, id)
			if err != nil {
				return fmt.Errorf("%w: %w", domain.ErrStorage, err)
			}
			if exists {
				return fmt.Errorf("%w: %q", domain.ErrDuplicateName, newName)
			}

			if err := tx.Model(&ActivityModel{}).Where("id = ?", id).Update("name", newName).Error; err != nil {
				return fmt.Errorf("%w: %w", domain.ErrStorage, err)
			}
			return nil
		})
	}, 3)
}

// Delete implements ActivityWriter.Delete. The whole descendant subtree and
// every time entry and habit log referencing it go in one transaction.
func (r *SQLiteRepository) Delete(ctx context.Context, id uint) error {
	return withRetry(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			ids, err := descendantsInTx(tx, id)
			if err != nil {
				return err
			}

			if err := tx.Where("activity_id IN ?", ids).Delete(&HabitLogModel{}).Error; err != nil {
				return fmt.Errorf("%w: deleting habit logs: %w", domain.ErrStorage, err)
			}
			if err := tx.Where("activity_id IN ?", ids).Delete(&TimeEntryModel{}).Error; err != nil {
				return fmt.Errorf("%w: deleting time entries: %w", domain.ErrStorage, err)
			}
			if err := tx.Where("id IN ?", ids).Delete(&ActivityModel{}).Error; err != nil {
				return fmt.Errorf("%w: deleting activities: %w", domain.ErrStorage, err)
			}
			return nil
		})
	}, 3)
}

// descendantsInTx is the transactional variant of Descendants so a cascading
// delete sees a consistent view of the adjacency
func descendantsInTx(tx *gorm.DB, id uint) ([]uint, error) {
	type rel struct {
		ID       uint
		ParentID *uint
	}
	var rels []rel
	if err := tx.Model(&ActivityModel{}).Select("id", "parent_id").Find(&rels).Error; err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}

	children := make(map[uint][]uint, len(rels))
	known := make(map[uint]bool, len(rels))
	for _, rl := range rels {
		known[rl.ID] = true
		if rl.ParentID != nil {
			children[*rl.ParentID] = append(children[*rl.ParentID], rl.ID)
		}
	}
	if !known[id] {
		return nil, fmt.Errorf("%w: activity %d", domain.ErrNotFound, id)
	}

	visited := make(map[uint]bool)
	queue := []uint{id}
	var result []uint
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if visited[current] {
			continue
		}
		visited[current] = true
		result = append(result, current)
		queue = append(queue, children[current]...)
	}
	return result, nil
}

// Append implements EntryLedger.Append
func (r *SQLiteRepository) Append(ctx context.Context, entry domain.TimeEntry) error {
	if entry.DurationSeconds <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %d", domain.ErrValidation, entry.DurationSeconds)
	}
	if !entry.Type.Valid() {
		return fmt.Errorf("%w: unknown entry type %q", domain.ErrValidation, entry.Type)
	}

	return withRetry(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var count int64
			if err := tx.Model(&ActivityModel{}).Where("id = ?", entry.ActivityID).Count(&count).Error; err != nil {
				return fmt.Errorf("%w: %w", domain.ErrStorage, err)
			}
			if count == 0 {
				return fmt.Errorf("%w: unknown activity %d", domain.ErrValidation, entry.ActivityID)
			}

			model := domainToTimeEntryModel(entry)
			if model.Timestamp.IsZero() {
				model.Timestamp = time.Now().UTC()
			}
			if err := tx.Create(&model).Error; err != nil {
				return fmt.Errorf("%w: %w", domain.ErrStorage, err)
			}
			return nil
		})
	}, 3)
}

// EntriesForActivity implements EntryLedger.EntriesForActivity
func (r *SQLiteRepository) EntriesForActivity(ctx context.Context, activityID uint) ([]domain.TimeEntry, error) {
	var models []TimeEntryModel
	err := withRetry(func() error {
		return r.db.WithContext(ctx).
			Where("activity_id = ?", activityID).
			Order("timestamp DESC").
			Find(&models).Error
	}, 3)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}

	entries := make([]domain.TimeEntry, len(models))
	for i, m := range models {
		entries[i] = timeEntryModelToDomain(m)
	}
	return entries, nil
}

// UpdateEntry implements EntryLedger.UpdateEntry. Only the provided fields
// change; a supplied timestamp is normalized to UTC.
func (r *SQLiteRepository) UpdateEntry(ctx context.Context, id uint, duration *int64, timestamp *time.Time, entryType *domain.EntryType) error {
	updates := map[string]any{}
	if duration != nil {
		if *duration <= 0 {
			return fmt.Errorf("%w: duration must be positive, got %d", domain.ErrValidation, *duration)
		}
		updates["duration_seconds"] = *duration
	}
	if timestamp != nil {
		updates["timestamp"] = timestamp.UTC()
	}
	if entryType != nil {
		if !entryType.Valid() {
			return fmt.Errorf("%w: unknown entry type %q", domain.ErrValidation, *entryType)
		}
		updates["entry_type"] = string(*entryType)
	}
	if len(updates) == 0 {
		return nil
	}

	return withRetry(func() error {
		result := r.db.WithContext(ctx).Model(&TimeEntryModel{}).Where("id = ?", id).Updates(updates)
		if result.Error != nil {
			return fmt.Errorf("%w: %w", domain.ErrStorage, result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: time entry %d", domain.ErrNotFound, id)
		}
		return nil
	}, 3)
}

// DeleteEntry implements EntryLedger.DeleteEntry
func (r *SQLiteRepository) DeleteEntry(ctx context.Context, id uint) error {
	return withRetry(func() error {
		result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&TimeEntryModel{})
		if result.Error != nil {
			return fmt.Errorf("%w: %w", domain.ErrStorage, result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: time entry %d", domain.ErrNotFound, id)
		}
		return nil
	}, 3)
}

// AverageDuration implements EntryAggregator.AverageDuration. Work and break
// entries both count; descendants are excluded.
func (r *SQLiteRepository) AverageDuration(ctx context.Context, activityID uint) (float64, error) {
	var avg float64
	err := withRetry(func() error {
		return r.db.WithContext(ctx).Model(&TimeEntryModel{}).
			Where("activity_id = ?", activityID).
			Select("COALESCE(AVG(duration_seconds), 0)").
			Scan(&avg).Error
	}, 3)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}
	return avg, nil
}

// TotalForBranch implements EntryAggregator.TotalForBranch: the duration sum
// over the activity and all of its descendants, work and break alike
func (r *SQLiteRepository) TotalForBranch(ctx context.Context, activityID uint) (int64, error) {
	ids, err := r.Descendants(ctx, activityID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}

	var total int64
	err = withRetry(func() error {
		return r.db.WithContext(ctx).Model(&TimeEntryModel{}).
			Where("activity_id IN ?", ids).
			Select("COALESCE(SUM(duration_seconds), 0)").
			Scan(&total).Error
	}, 3)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}
	return total, nil
}

// AverageSessionComposition implements EntryAggregator.AverageSessionComposition.
// Entries are grouped by session id; sessions whose work+break sum is zero
// are excluded before averaging.
func (r *SQLiteRepository) AverageSessionComposition(ctx context.Context, activityID uint) (domain.SessionComposition, error) {
	var row struct {
		AvgBreak float64
		AvgTotal float64
		AvgWork  float64
	}
	err := withRetry(func() error {
		return r.db.WithContext(ctx).Raw(`
			WITH session_durations AS (
				SELECT
					session_id,
					SUM(CASE WHEN entry_type = 'work' THEN duration_seconds ELSE 0 END) AS work_duration,
					SUM(CASE WHEN entry_type = 'break' THEN duration_seconds ELSE 0 END) AS break_duration
				FROM time_entries
				WHERE activity_id = ? AND session_id IS NOT NULL
				GROUP BY session_id
				HAVING work_duration > 0 OR break_duration > 0
			)
			SELECT
				COALESCE(AVG(work_duration), 0) AS avg_work,
				COALESCE(AVG(break_duration), 0) AS avg_break,
				COALESCE(AVG(work_duration + break_duration), 0) AS avg_total
			FROM session_durations`, activityID).Scan(&row).Error
	}, 3)
	if err != nil {
		return domain.SessionComposition{}, fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}

	return domain.SessionComposition{
		AvgBreakSeconds: row.AvgBreak,
		AvgTotalSeconds: row.AvgTotal,
		AvgWorkSeconds:  row.AvgWork,
	}, nil
}

// EntryCount implements EntryAggregator.EntryCount: the number of entries of
// either type recorded directly against the activity
func (r *SQLiteRepository) EntryCount(ctx context.Context, activityID uint) (int64, error) {
	var count int64
	err := withRetry(func() error {
		return r.db.WithContext(ctx).Model(&TimeEntryModel{}).
			Where("activity_id = ?", activityID).
			Count(&count).Error
	}, 3)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}
	return count, nil
}

// EntriesForDate implements EntryAggregator.EntriesForDate. The day is
// interpreted as a UTC calendar day, matching the stored time reference.
func (r *SQLiteRepository) EntriesForDate(ctx context.Context, day time.Time) ([]domain.DailyEntry, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)

	var rows []struct {
		ActivityID      uint
		ActivityName    string
		DurationSeconds int64
		EntryID         uint
		EntryType       string
		SessionID       *int64
		Timestamp       time.Time
	}
	err := withRetry(func() error {
		return r.db.WithContext(ctx).Raw(`
			SELECT
				te.id AS entry_id,
				te.activity_id AS activity_id,
				a.name AS activity_name,
				te.duration_seconds AS duration_seconds,
				te.entry_type AS entry_type,
				te.timestamp AS timestamp,
				te.session_id AS session_id
			FROM time_entries te
			JOIN activities a ON te.activity_id = a.id
			WHERE te.timestamp >= ? AND te.timestamp < ?
			ORDER BY te.timestamp ASC, a.name ASC`, start, end).Scan(&rows).Error
	}, 3)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}

	entries := make([]domain.DailyEntry, len(rows))
	for i, row := range rows {
		entries[i] = domain.DailyEntry{
			ActivityID:      row.ActivityID,
			ActivityName:    row.ActivityName,
			DurationSeconds: row.DurationSeconds,
			EntryID:         row.EntryID,
			SessionID:       row.SessionID,
			Timestamp:       row.Timestamp.UTC(),
			Type:            domain.EntryType(row.EntryType),
		}
	}
	return entries, nil
}

// HabitConfig implements HabitStore.HabitConfig. Returns nil when the
// activity is not configured as a habit.
func (r *SQLiteRepository) HabitConfig(ctx context.Context, activityID uint) (*domain.HabitConfig, error) {
	activity, err := r.Get(ctx, activityID)
	if err != nil {
		return nil, err
	}
	return activity.Habit, nil
}

// SetHabitConfig implements HabitStore.SetHabitConfig. A nil config clears
// the habit; a newly enabled habit is appended to the habit sort order.
func (r *SQLiteRepository) SetHabitConfig(ctx context.Context, activityID uint, cfg *domain.HabitConfig) error {
	if cfg != nil && !cfg.Type.Valid() {
		return fmt.Errorf("%w: unknown habit type %q", domain.ErrValidation, cfg.Type)
	}

	return withRetry(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var model ActivityModel
			if err := tx.First(&model, activityID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: activity %d", domain.ErrNotFound, activityID)
				}
				return fmt.Errorf("%w: %w", domain.ErrStorage, err)
			}

			updates := map[string]any{
				"habit_goal":       nil,
				"habit_sort_order": nil,
				"habit_type":       nil,
				"habit_unit":       nil,
			}

			if cfg != nil {
				updates["habit_type"] = string(cfg.Type)

				// Unit and goal apply to numeric habits only; goals must be positive
				if cfg.Type == domain.HabitNumeric {
					if cfg.Unit != "" {
						updates["habit_unit"] = cfg.Unit
					}
					if cfg.Goal != nil && *cfg.Goal > 0 {
						updates["habit_goal"] = *cfg.Goal
					}
				}

				if model.HabitSortOrder != nil {
					updates["habit_sort_order"] = *model.HabitSortOrder
				} else {
					var maxOrder *int
					if err := tx.Model(&ActivityModel{}).
						Select("MAX(habit_sort_order)").
						Where("habit_sort_order IS NOT NULL").
						Scan(&maxOrder).Error; err != nil {
						return fmt.Errorf("%w: %w", domain.ErrStorage, err)
					}
					next := 0
					if maxOrder != nil {
						next = *maxOrder + 1
					}
					updates["habit_sort_order"] = next
				}
			}

			if err := tx.Model(&ActivityModel{}).Where("id = ?", activityID).Updates(updates).Error; err != nil {
				return fmt.Errorf("%w: %w", domain.ErrStorage, err)
			}
			return nil
		})
	}, 3)
}

// Habits implements HabitStore.Habits, ordered by the user-managed sort
// order with name as tiebreaker
func (r *SQLiteRepository) Habits(ctx context.Context) ([]domain.Habit, error) {
	var models []ActivityModel
	err := withRetry(func() error {
		return r.db.WithContext(ctx).
			Where("habit_type IS NOT NULL").
			Order("habit_sort_order ASC, name ASC").
			Find(&models).Error
	}, 3)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}

	habits := make([]domain.Habit, 0, len(models))
	for _, m := range models {
		cfg := habitConfigFromModel(m)
		if cfg == nil {
			continue
		}
		sortOrder := 0
		if m.HabitSortOrder != nil {
			sortOrder = *m.HabitSortOrder
		}
		habits = append(habits, domain.Habit{
			ActivityID: m.ID,
			Config:     *cfg,
			Name:       m.Name,
			SortOrder:  sortOrder,
		})
	}
	return habits, nil
}

// LogHabit implements HabitStore.LogHabit with upsert semantics: one value
// per activity per date
func (r *SQLiteRepository) LogHabit(ctx context.Context, activityID uint, date string, value float64) error {
	if _, err := time.Parse(domain.DateLayout, date); err != nil {
		return fmt.Errorf("%w: invalid date %q", domain.ErrValidation, date)
	}

	return withRetry(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var count int64
			if err := tx.Model(&ActivityModel{}).Where("id = ?", activityID).Count(&count).Error; err != nil {
				return fmt.Errorf("%w: %w", domain.ErrStorage, err)
			}
			if count == 0 {
				return fmt.Errorf("%w: activity %d", domain.ErrNotFound, activityID)
			}

			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "activity_id"}, {Name: "log_date"}},
				DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
			}).Create(&HabitLogModel{
				ActivityID: activityID,
				LogDate:    date,
				Value:      value,
			}).Error
			if err != nil {
				return fmt.Errorf("%w: %w", domain.ErrStorage, err)
			}
			return nil
		})
	}, 3)
}

// ClearHabitLog implements HabitStore.ClearHabitLog
func (r *SQLiteRepository) ClearHabitLog(ctx context.Context, activityID uint, date string) error {
	return withRetry(func() error {
		err := r.db.WithContext(ctx).
			Where("activity_id = ? AND log_date = ?", activityID, date).
			Delete(&HabitLogModel{}).Error
		if err != nil {
			return fmt.Errorf("%w: %w", domain.ErrStorage, err)
		}
		return nil
	}, 3)
}

// HabitLog implements HabitStore.HabitLog. Returns nil when no value is
// logged for that date.
func (r *SQLiteRepository) HabitLog(ctx context.Context, activityID uint, date string) (*float64, error) {
	var model HabitLogModel
	err := withRetry(func() error {
		return r.db.WithContext(ctx).
			Where("activity_id = ? AND log_date = ?", activityID, date).
			First(&model).Error
	}, 3)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}

	value := model.Value
	return &value, nil
}

// HabitLogsForRange implements HabitStore.HabitLogsForRange (inclusive bounds)
func (r *SQLiteRepository) HabitLogsForRange(ctx context.Context, activityID uint, startDate, endDate string) ([]domain.HabitLog, error) {
	var models []HabitLogModel
	err := withRetry(func() error {
		return r.db.WithContext(ctx).
			Where("activity_id = ? AND log_date BETWEEN ? AND ?", activityID, startDate, endDate).
			Order("log_date ASC").
			Find(&models).Error
	}, 3)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}

	logs := make([]domain.HabitLog, len(models))
	for i, m := range models {
		logs[i] = domain.HabitLog{
			ActivityID: m.ActivityID,
			Date:       m.LogDate,
			Value:      m.Value,
		}
	}
	return logs, nil
}

// ReorderHabits implements HabitStore.ReorderHabits: one transaction over
// the whole ordering
func (r *SQLiteRepository) ReorderHabits(ctx context.Context, orderedIDs []uint) error {
	return withRetry(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			for position, id := range orderedIDs {
				err := tx.Model(&ActivityModel{}).
					Where("id = ? AND habit_type IS NOT NULL", id).
					Update("habit_sort_order", position).Error
				if err != nil {
					return fmt.Errorf("%w: %w", domain.ErrStorage, err)
				}
			}
			return nil
		})
	}, 3)
}

// withRetry retries operations on SQLITE_BUSY with exponential backoff
func withRetry(fn func() error, maxRetries int) error {
	for i := 0; i < maxRetries; i++ {
		err := fn()
		if err == nil {
			return nil
		}

		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && (sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked) {
			time.Sleep(time.Millisecond * time.Duration(50*(i+1)))
			continue
		}

		return err
	}
	return fmt.Errorf("operation failed after %d retries", maxRetries)
}
