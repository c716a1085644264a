package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_DefaultsWithEnvSecret(t *testing.T) {
	t.Setenv("EMPLOI_AUTH_JWT_SECRET", "test-secret-key-0123456789")
	t.Setenv("EMPLOI_DB_DRIVER", "sqlite")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load 应成功: %v", err)
	}

	if cfg.Database.Driver != "sqlite" {
		t.Errorf("期望 driver=sqlite，实际 %s", cfg.Database.Driver)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("期望默认端口 8080，实际 %d", cfg.Server.Port)
	}
	if cfg.Schedule.Timezone != "Europe/Paris" {
		t.Errorf("期望默认时区 Europe/Paris，实际 %s", cfg.Schedule.Timezone)
	}
	if cfg.Auth.AccessTokenTTL != 30*time.Minute {
		t.Errorf("期望 AccessTokenTTL=30m，实际 %v", cfg.Auth.AccessTokenTTL)
	}
	if len(cfg.Seed.Departments) != 6 {
		t.Fatalf("期望 6 个预置部门，实际 %d", len(cfg.Seed.Departments))
	}
	if cfg.Seed.Departments[0].Code != "IRT" {
		t.Errorf("期望首个部门 IRT，实际 %s", cfg.Seed.Departments[0].Code)
	}
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: 9090
db:
  driver: sqlite
  path: /tmp/emploi-test.db
auth:
  jwt_secret: file-secret-key-0123456789
seed:
  departments:
    - code: IRT
      name: Informatique
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("写入配置文件失败: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load 应成功: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("期望端口 9090，实际 %d", cfg.Server.Port)
	}
	if cfg.Database.Path != "/tmp/emploi-test.db" {
		t.Errorf("sqlite 路径不符: %s", cfg.Database.Path)
	}
	if len(cfg.Seed.Departments) != 1 || cfg.Seed.Departments[0].Name != "Informatique" {
		t.Errorf("文件中的部门列表应覆盖默认值: %+v", cfg.Seed.Departments)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:   ServerConfig{Port: 8080},
			Database: DatabaseConfig{Driver: "postgres"},
			Auth:     AuthConfig{JWTSecret: "0123456789abcdef"},
		}
	}

	if err := valid().Validate(); err != nil {
		t.Fatalf("合法配置不应报错: %v", err)
	}

	cases := map[string]func(c *Config){
		"empty secret": func(c *Config) { c.Auth.JWTSecret = "" },
		"short secret": func(c *Config) { c.Auth.JWTSecret = "short" },
		"port range":   func(c *Config) { c.Server.Port = 70000 },
		"driver":       func(c *Config) { c.Database.Driver = "mysql" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := valid()
			mutate(c)
			if err := c.Validate(); err == nil {
				t.Error("期望校验失败")
			}
		})
	}
}
