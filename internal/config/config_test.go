package config

import (
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")
	t.Setenv("MAIL_ADMIN", "admin@przyklad.pl")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Env != "dev" || cfg.Port != 8080 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.MailDriver != "log" {
		t.Fatalf("expected log mail driver, got %q", cfg.MailDriver)
	}
	if cfg.MailTimeout != 10*time.Second {
		t.Fatalf("unexpected mail timeout %v", cfg.MailTimeout)
	}
}

func TestLoadMissingSecretKeyFails(t *testing.T) {
	t.Setenv("SECRET_KEY", "")
	t.Setenv("MAIL_ADMIN", "admin@przyklad.pl")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for missing SECRET_KEY")
	}
}

func TestLoadSMTPDriverRequiresHost(t *testing.T) {
	setRequired(t)
	t.Setenv("MAIL_DRIVER", "smtp")
	t.Setenv("SMTP_HOST", "")
	t.Setenv("MAIL_FROM", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for missing SMTP settings")
	}

	t.Setenv("SMTP_HOST", "smtp.przyklad.pl")
	t.Setenv("MAIL_FROM", "kontakt@przyklad.pl")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.SMTPPort != 587 {
		t.Fatalf("expected default SMTP port, got %d", cfg.SMTPPort)
	}
}

func TestLoadUnknownMailDriver(t *testing.T) {
	setRequired(t)
	t.Setenv("MAIL_DRIVER", "carrier-pigeon")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unknown mail driver")
	}
}

func TestDatabaseURLOverride(t *testing.T) {
	setRequired(t)
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/site")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.DBURL != "postgres://u:p@db:5432/site" {
		t.Fatalf("DBURL = %q", cfg.DBURL)
	}
}
