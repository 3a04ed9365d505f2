/*
Package sqlite provides a SQLite-backed implementation of leave.Store.

PURPOSE:
  Production persistence for employees, leave requests, configuration and
  the year-close meta record. The same SQL applies to PostgreSQL with
  minor dialect changes.

KEY TABLES:
  employees:        One row per funcionario with per-category balances
  leave_requests:   One row per request, dates as ISO YYYY-MM-DD text
  app_config:       Single-row table of tunables
  year_close_meta:  Single-row table preventing double-close/double-remind

DECIMAL STORAGE:
  Day amounts are stored as decimal text and round-tripped through
  decimal.NewFromString, never through float64, so 0.5 stays 0.5.

WAL MODE:
  SQLite is opened with WAL for better concurrency: multiple readers
  don't block and crash recovery is cleaner.

USAGE:
  store, err := sqlite.New("./data/permiso.db")
  ...
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New(). For production, use a versioned
  migration tool instead.
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/Sidrek1992/CFT-Permiso/calendar"
	"github.com/Sidrek1992/CFT-Permiso/leave"
)

// Store implements leave.Store on SQLite.
type Store struct {
	db *sql.DB
}

var _ leave.Store = (*Store)(nil)

// New opens (or creates) the database at dbPath and migrates the schema.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		email TEXT NOT NULL,
		position TEXT,
		department TEXT,
		avatar_url TEXT,
		total_vacation TEXT NOT NULL,
		used_vacation TEXT NOT NULL,
		total_admin TEXT NOT NULL,
		used_admin TEXT NOT NULL,
		total_sick TEXT NOT NULL,
		used_sick TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS leave_requests (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		type TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		shift TEXT NOT NULL,
		days_count TEXT NOT NULL,
		status TEXT NOT NULL,
		reason TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_requests_employee
		ON leave_requests(employee_id);
	CREATE INDEX IF NOT EXISTS idx_requests_status
		ON leave_requests(status);
	CREATE INDEX IF NOT EXISTS idx_requests_dates
		ON leave_requests(start_date, end_date);

	-- Single-row tables; the CHECK keeps them single-row.
	CREATE TABLE IF NOT EXISTS app_config (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		default_vacation_days TEXT NOT NULL,
		default_admin_days TEXT NOT NULL,
		default_sick_leave_days TEXT NOT NULL,
		notification_email TEXT,
		email_template TEXT,
		carryover_vacation_enabled INTEGER NOT NULL,
		carryover_max_periods INTEGER NOT NULL,
		admin_expire_at_year_end INTEGER NOT NULL,
		reminder_days INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS year_close_meta (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		last_closed_year INTEGER NOT NULL,
		last_reminder_year INTEGER NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// EMPLOYEES
// =============================================================================

const employeeColumns = `id, first_name, last_name, email, position, department, avatar_url,
	total_vacation, used_vacation, total_admin, used_admin, total_sick, used_sick`

func (s *Store) ListEmployees(ctx context.Context) ([]leave.Employee, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+employeeColumns+` FROM employees ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	var out []leave.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, emp)
	}
	return out, rows.Err()
}

func (s *Store) GetEmployee(ctx context.Context, id string) (leave.Employee, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE id = ?`, id)
	emp, err := scanEmployee(row)
	if errors.Is(err, sql.ErrNoRows) {
		return leave.Employee{}, leave.ErrEmployeeNotFound
	}
	return emp, err
}

func (s *Store) PutEmployee(ctx context.Context, emp leave.Employee) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO employees (`+employeeColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			first_name = excluded.first_name,
			last_name = excluded.last_name,
			email = excluded.email,
			position = excluded.position,
			department = excluded.department,
			avatar_url = excluded.avatar_url,
			total_vacation = excluded.total_vacation,
			used_vacation = excluded.used_vacation,
			total_admin = excluded.total_admin,
			used_admin = excluded.used_admin,
			total_sick = excluded.total_sick,
			used_sick = excluded.used_sick`,
		emp.ID, emp.FirstName, emp.LastName, emp.Email, emp.Position, emp.Department, emp.AvatarURL,
		emp.TotalVacation.String(), emp.UsedVacation.String(),
		emp.TotalAdmin.String(), emp.UsedAdmin.String(),
		emp.TotalSick.String(), emp.UsedSick.String())
	if err != nil {
		return fmt.Errorf("put employee %s: %w", emp.ID, err)
	}
	return nil
}

func (s *Store) DeleteEmployee(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM employees WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete employee %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return leave.ErrEmployeeNotFound
	}
	return nil
}

func (s *Store) ReplaceEmployees(ctx context.Context, employees []leave.Employee) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM employees`); err != nil {
			return err
		}
		for _, emp := range employees {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO employees (`+employeeColumns+`)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				emp.ID, emp.FirstName, emp.LastName, emp.Email, emp.Position, emp.Department, emp.AvatarURL,
				emp.TotalVacation.String(), emp.UsedVacation.String(),
				emp.TotalAdmin.String(), emp.UsedAdmin.String(),
				emp.TotalSick.String(), emp.UsedSick.String()); err != nil {
				return fmt.Errorf("insert employee %s: %w", emp.ID, err)
			}
		}
		return nil
	})
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row rowScanner) (leave.Employee, error) {
	var emp leave.Employee
	var totalVac, usedVac, totalAdm, usedAdm, totalSick, usedSick string
	err := row.Scan(&emp.ID, &emp.FirstName, &emp.LastName, &emp.Email,
		&emp.Position, &emp.Department, &emp.AvatarURL,
		&totalVac, &usedVac, &totalAdm, &usedAdm, &totalSick, &usedSick)
	if err != nil {
		return leave.Employee{}, err
	}

	for _, field := range []struct {
		raw  string
		dest *decimal.Decimal
	}{
		{totalVac, &emp.TotalVacation}, {usedVac, &emp.UsedVacation},
		{totalAdm, &emp.TotalAdmin}, {usedAdm, &emp.UsedAdmin},
		{totalSick, &emp.TotalSick}, {usedSick, &emp.UsedSick},
	} {
		d, err := decimal.NewFromString(field.raw)
		if err != nil {
			return leave.Employee{}, fmt.Errorf("employee %s: bad decimal %q: %w", emp.ID, field.raw, err)
		}
		*field.dest = d
	}
	return emp, nil
}

// =============================================================================
// LEAVE REQUESTS
// =============================================================================

const requestColumns = `id, employee_id, type, start_date, end_date, shift, days_count, status, reason`

func (s *Store) ListRequests(ctx context.Context) ([]leave.LeaveRequest, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+requestColumns+` FROM leave_requests ORDER BY start_date, id`)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	defer rows.Close()

	var out []leave.LeaveRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

func (s *Store) GetRequest(ctx context.Context, id string) (leave.LeaveRequest, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+requestColumns+` FROM leave_requests WHERE id = ?`, id)
	req, err := scanRequest(row)
	if errors.Is(err, sql.ErrNoRows) {
		return leave.LeaveRequest{}, leave.ErrRequestNotFound
	}
	return req, err
}

func (s *Store) PutRequest(ctx context.Context, req leave.LeaveRequest) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO leave_requests (`+requestColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			employee_id = excluded.employee_id,
			type = excluded.type,
			start_date = excluded.start_date,
			end_date = excluded.end_date,
			shift = excluded.shift,
			days_count = excluded.days_count,
			status = excluded.status,
			reason = excluded.reason`,
		req.ID, req.EmployeeID, string(req.Type),
		req.StartDate.String(), req.EndDate.String(),
		string(req.Shift), req.DaysCount.String(), string(req.Status), req.Reason)
	if err != nil {
		return fmt.Errorf("put request %s: %w", req.ID, err)
	}
	return nil
}

func (s *Store) DeleteRequest(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM leave_requests WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete request %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return leave.ErrRequestNotFound
	}
	return nil
}

func (s *Store) ReplaceRequests(ctx context.Context, requests []leave.LeaveRequest) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM leave_requests`); err != nil {
			return err
		}
		for _, req := range requests {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO leave_requests (`+requestColumns+`)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				req.ID, req.EmployeeID, string(req.Type),
				req.StartDate.String(), req.EndDate.String(),
				string(req.Shift), req.DaysCount.String(), string(req.Status), req.Reason); err != nil {
				return fmt.Errorf("insert request %s: %w", req.ID, err)
			}
		}
		return nil
	})
}

func scanRequest(row rowScanner) (leave.LeaveRequest, error) {
	var req leave.LeaveRequest
	var typ, start, end, shift, days, status string
	err := row.Scan(&req.ID, &req.EmployeeID, &typ, &start, &end, &shift, &days, &status, &req.Reason)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	req.Type = leave.LeaveType(typ)
	req.Shift = leave.WorkShift(shift)
	req.Status = leave.RequestStatus(status)

	if req.StartDate, err = calendar.Parse(start); err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("request %s: bad start date %q: %w", req.ID, start, err)
	}
	if req.EndDate, err = calendar.Parse(end); err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("request %s: bad end date %q: %w", req.ID, end, err)
	}
	if req.DaysCount, err = decimal.NewFromString(days); err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("request %s: bad day count %q: %w", req.ID, days, err)
	}
	return req, nil
}

// =============================================================================
// CONFIG
// =============================================================================

// Config returns the stored configuration, or the defaults when nothing
// has been saved yet.
func (s *Store) Config(ctx context.Context) (leave.Config, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT default_vacation_days, default_admin_days, default_sick_leave_days,
			notification_email, email_template,
			carryover_vacation_enabled, carryover_max_periods,
			admin_expire_at_year_end, reminder_days
		FROM app_config WHERE id = 1`)

	var cfg leave.Config
	var vac, adm, sick string
	var carryEnabled, adminExpire int
	err := row.Scan(&vac, &adm, &sick, &cfg.NotificationEmail, &cfg.EmailTemplate,
		&carryEnabled, &cfg.CarryoverMaxPeriods, &adminExpire, &cfg.ReminderDays)
	if errors.Is(err, sql.ErrNoRows) {
		return leave.DefaultConfig(), nil
	}
	if err != nil {
		return leave.Config{}, fmt.Errorf("load config: %w", err)
	}

	if cfg.DefaultVacationDays, err = decimal.NewFromString(vac); err != nil {
		return leave.Config{}, fmt.Errorf("config: bad vacation default %q: %w", vac, err)
	}
	if cfg.DefaultAdminDays, err = decimal.NewFromString(adm); err != nil {
		return leave.Config{}, fmt.Errorf("config: bad admin default %q: %w", adm, err)
	}
	if cfg.DefaultSickLeaveDays, err = decimal.NewFromString(sick); err != nil {
		return leave.Config{}, fmt.Errorf("config: bad sick default %q: %w", sick, err)
	}
	cfg.CarryoverVacationEnabled = carryEnabled != 0
	cfg.AdminExpireAtYearEnd = adminExpire != 0
	return cfg, nil
}

func (s *Store) PutConfig(ctx context.Context, cfg leave.Config) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO app_config (id, default_vacation_days, default_admin_days, default_sick_leave_days,
			notification_email, email_template,
			carryover_vacation_enabled, carryover_max_periods, admin_expire_at_year_end, reminder_days)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			default_vacation_days = excluded.default_vacation_days,
			default_admin_days = excluded.default_admin_days,
			default_sick_leave_days = excluded.default_sick_leave_days,
			notification_email = excluded.notification_email,
			email_template = excluded.email_template,
			carryover_vacation_enabled = excluded.carryover_vacation_enabled,
			carryover_max_periods = excluded.carryover_max_periods,
			admin_expire_at_year_end = excluded.admin_expire_at_year_end,
			reminder_days = excluded.reminder_days`,
		cfg.DefaultVacationDays.String(), cfg.DefaultAdminDays.String(), cfg.DefaultSickLeaveDays.String(),
		cfg.NotificationEmail, cfg.EmailTemplate,
		boolToInt(cfg.CarryoverVacationEnabled), cfg.CarryoverMaxPeriods,
		boolToInt(cfg.AdminExpireAtYearEnd), cfg.ReminderDays)
	if err != nil {
		return fmt.Errorf("put config: %w", err)
	}
	return nil
}

// =============================================================================
// YEAR CLOSE META
// =============================================================================

func (s *Store) CloseMeta(ctx context.Context) (leave.CloseMeta, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT last_closed_year, last_reminder_year FROM year_close_meta WHERE id = 1`)

	var meta leave.CloseMeta
	err := row.Scan(&meta.LastClosedYear, &meta.LastReminderYear)
	if errors.Is(err, sql.ErrNoRows) {
		return leave.CloseMeta{}, nil
	}
	if err != nil {
		return leave.CloseMeta{}, fmt.Errorf("load close meta: %w", err)
	}
	return meta, nil
}

func (s *Store) PutCloseMeta(ctx context.Context, meta leave.CloseMeta) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO year_close_meta (id, last_closed_year, last_reminder_year)
		VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			last_closed_year = excluded.last_closed_year,
			last_reminder_year = excluded.last_reminder_year`,
		meta.LastClosedYear, meta.LastReminderYear)
	if err != nil {
		return fmt.Errorf("put close meta: %w", err)
	}
	return nil
}

// =============================================================================
// HELPERS
// =============================================================================

func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
