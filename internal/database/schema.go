package database

import (
	"context"
	"database/sql"
	"fmt"
)

// schema lists the tables in creation order.  dj_socials precedes djs
// because a profile references its socials row.
var schema = []struct {
	table string
	ddl   string
}{
	{"events", `CREATE TABLE IF NOT EXISTS events (
	id            BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
	name          VARCHAR(255) NOT NULL,
	venue_name    VARCHAR(255) NOT NULL,
	address       VARCHAR(255) NOT NULL,
	start_date    DATE         NOT NULL,
	start_time    VARCHAR(5)   NOT NULL,
	end_time      VARCHAR(5)   NOT NULL,
	time_zone     VARCHAR(64)  NOT NULL,
	ticket_status VARCHAR(32)  NOT NULL,
	ticket_link   VARCHAR(255) NULL,
	lineup        TEXT         NOT NULL,
	genres        TEXT         NOT NULL,
	description   TEXT         NOT NULL,
	poster_url    VARCHAR(255) NULL,
	price         DOUBLE       NULL,
	currency      VARCHAR(10)  NOT NULL DEFAULT 'USD',
	PRIMARY KEY (id),
	KEY idx_events_start_date (start_date)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`},
	{"contents", "CREATE TABLE IF NOT EXISTS contents (\n" +
		"\tid                BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,\n" +
		"\t`key`             VARCHAR(255) NOT NULL,\n" +
		"\tstring_collection TEXT         NOT NULL,\n" +
		"\tbig_string        LONGTEXT     NULL,\n" +
		"\tPRIMARY KEY (id),\n" +
		"\tUNIQUE KEY uq_contents_key (`key`)\n" +
		") ENGINE=InnoDB DEFAULT CHARSET=utf8mb4"},
	{"dj_socials", `CREATE TABLE IF NOT EXISTS dj_socials (
	id          BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
	instagram   VARCHAR(255) NULL,
	tiktok      VARCHAR(255) NULL,
	spotify     VARCHAR(255) NULL,
	soundcloud  VARCHAR(255) NULL,
	youtube     VARCHAR(255) NULL,
	apple_music VARCHAR(255) NULL,
	PRIMARY KEY (id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`},
	{"djs", `CREATE TABLE IF NOT EXISTS djs (
	id          BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
	alias       VARCHAR(255) NOT NULL,
	profile_url VARCHAR(255) NOT NULL,
	social_id   BIGINT UNSIGNED NULL,
	PRIMARY KEY (id),
	KEY idx_djs_social_id (social_id),
	CONSTRAINT fk_djs_social FOREIGN KEY (social_id) REFERENCES dj_socials (id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`},
	{"mailing_list", `CREATE TABLE IF NOT EXISTS mailing_list (
	id         BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
	name       VARCHAR(255) NOT NULL,
	email      VARCHAR(255) NOT NULL,
	subscribed TINYINT(1)   NOT NULL DEFAULT 1,
	created_at TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (id),
	UNIQUE KEY uq_mailing_list_email (email)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`},
}

// Tables returns the managed table names in creation order.
func Tables() []string {
	out := make([]string, len(schema))
	for i, s := range schema {
		out[i] = s.table
	}
	return out
}

// Migrate creates any missing table.  Existing tables are left untouched.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, s := range schema {
		if _, err := db.ExecContext(ctx, s.ddl); err != nil {
			return fmt.Errorf("create table %s: %w", s.table, err)
		}
	}
	return nil
}
