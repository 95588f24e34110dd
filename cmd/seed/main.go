package main

import (
	"bufio"
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
)

// CLI flags
var (
	csvPath     = flag.String("csv", "", "Path to the source CSV (required)")
	dsn         = flag.String("dsn", os.Getenv("DATABASE_URL"), "Postgres DSN (default: env DATABASE_URL)")
	dryRun      = flag.Bool("dry-run", false, "Parse + validate only; no DB writes")
	confirm     = flag.Bool("confirm", false, "Required to write to the database")
	advisoryKey = flag.Int64("advisory-lock", 0, "Optional Postgres advisory lock key (e.g., 424242). 0 = disabled")
)

// CSV contract
// user_id,name,role,zone_lat,zone_lng,zone_radius_m
// role is admin or tracked; the three zone columns are all blank or all set

type UserCSV struct {
	UserID     int64
	Name       string
	Role       string
	ZoneLat    *float64
	ZoneLng    *float64
	ZoneRadius *float64
}

func main() {
	_ = godotenv.Load(".env.local")
	flag.Parse()
	if *csvPath == "" {
		fatalf("--csv is required")
	}
	if *dsn == "" {
		fatalf("--dsn not provided and DATABASE_URL not set")
	}

	rows, err := loadCSV(*csvPath)
	if err != nil {
		fatalf("CSV error: %v", err)
	}

	fmt.Printf("Loaded %d users from %s\n", len(rows), *csvPath)

	if *dryRun {
		printPlan(rows)
		fmt.Println("Dry run complete. No changes made.")
		return
	}

	if !*confirm {
		fatalf("Refusing to run without --confirm. Add --dry-run to preview.")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	db, err := sql.Open("pgx", *dsn)
	if err != nil {
		fatalf("connect: %v", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		fatalf("ping: %v", err)
	}

	tx, err := db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		fatalf("begin tx: %v", err)
	}
	defer func() {
		_ = tx.Rollback() // no-op if already committed
	}()

	// Optional advisory lock to avoid concurrent runs
	if *advisoryKey != 0 {
		if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, *advisoryKey); err != nil {
			fatalf("advisory lock: %v", err)
		}
	}

	var before int64
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM tracking.users`).Scan(&before); err != nil {
		fatalf("pre-count: %v", err)
	}
	fmt.Printf("Before: users=%d\n", before)

	for _, u := range rows {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO tracking.users (user_id, name, role, zone_lat, zone_lng, zone_radius_m)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (user_id) DO UPDATE SET
				name = EXCLUDED.name,
				role = EXCLUDED.role,
				zone_lat = EXCLUDED.zone_lat,
				zone_lng = EXCLUDED.zone_lng,
				zone_radius_m = EXCLUDED.zone_radius_m
		`, u.UserID, u.Name, u.Role, u.ZoneLat, u.ZoneLng, u.ZoneRadius)
		if err != nil {
			fatalf("upsert user %d: %v", u.UserID, err)
		}
	}

	var after int64
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM tracking.users`).Scan(&after); err != nil {
		fatalf("post-count: %v", err)
	}
	fmt.Printf("After:  users=%d\n", after)

	if err := tx.Commit(); err != nil {
		fatalf("commit: %v", err)
	}
	fmt.Println("Seed complete ✅")
}

func loadCSV(path string) ([]UserCSV, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	br := bufio.NewReader(f)
	r := csv.NewReader(br)
	r.TrimLeadingSpace = true

	headers, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	// Handle BOM on first header cell
	if len(headers) > 0 {
		headers[0] = strings.TrimPrefix(headers[0], "\ufeff")
	}

	idx := map[string]int{}
	for i, h := range headers {
		idx[strings.TrimSpace(h)] = i
	}
	required := []string{"user_id", "name", "role", "zone_lat", "zone_lng", "zone_radius_m"}
	for _, k := range required {
		if _, ok := idx[k]; !ok {
			return nil, fmt.Errorf("missing required column: %s", k)
		}
	}

	seen := make(map[int64]struct{})
	var out []UserCSV
	line := 1
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv read: %w", err)
		}
		line++

		get := func(name string) string {
			i := idx[name]
			if i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}

		id, err := strconv.ParseInt(get("user_id"), 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("row %d: user_id must be a positive integer (got %q)", line, get("user_id"))
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("row %d: duplicate user_id %d", line, id)
		}
		seen[id] = struct{}{}

		role := get("role")
		if role != "admin" && role != "tracked" {
			return nil, fmt.Errorf("row %d: role must be admin or tracked (got %q)", line, role)
		}

		u := UserCSV{
			UserID: id,
			Name:   get("name"),
			Role:   role,
		}

		latRaw, lngRaw, radRaw := get("zone_lat"), get("zone_lng"), get("zone_radius_m")
		blank := latRaw == "" && lngRaw == "" && radRaw == ""
		full := latRaw != "" && lngRaw != "" && radRaw != ""
		if !blank && !full {
			return nil, fmt.Errorf("row %d: zone columns must be all blank or all set", line)
		}
		if full {
			lat, err := strconv.ParseFloat(latRaw, 64)
			if err != nil || lat < -90 || lat > 90 {
				return nil, fmt.Errorf("row %d: invalid zone_lat %q", line, latRaw)
			}
			lng, err := strconv.ParseFloat(lngRaw, 64)
			if err != nil || lng < -180 || lng > 180 {
				return nil, fmt.Errorf("row %d: invalid zone_lng %q", line, lngRaw)
			}
			rad, err := strconv.ParseFloat(radRaw, 64)
			if err != nil || rad <= 0 {
				return nil, fmt.Errorf("row %d: zone_radius_m must be positive (got %q)", line, radRaw)
			}
			u.ZoneLat, u.ZoneLng, u.ZoneRadius = &lat, &lng, &rad
		}

		out = append(out, u)
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("CSV has no data rows")
	}
	return out, nil
}

func printPlan(rows []UserCSV) {
	for _, u := range rows {
		if u.ZoneRadius != nil {
			fmt.Printf("  %d %-20s %-8s zone=(%.5f, %.5f) r=%.0fm\n",
				u.UserID, u.Name, u.Role, *u.ZoneLat, *u.ZoneLng, *u.ZoneRadius)
		} else {
			fmt.Printf("  %d %-20s %-8s no zone\n", u.UserID, u.Name, u.Role)
		}
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
