package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"emploi/config"
	"emploi/internal/dto"
	"emploi/internal/model"
	"emploi/internal/repository"
	apperrors "emploi/pkg/errors"
	"emploi/pkg/database"
	"emploi/pkg/jwt"
)

// ── 测试夹具 ──

type fixture struct {
	db   *gorm.DB
	repo *repository.Repository
	svc  *Service

	chiefIRT *Identity
	chiefGM  *Identity
	student  *Identity
	admin    *Identity
}

func strPtr(s string) *string { return &s }

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:       "test-secret-key-for-unit-tests-only",
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: 24 * time.Hour,
		},
		Schedule: config.ScheduleConfig{Timezone: "Europe/Paris"},
	}
}

func chief(dept string) *Identity {
	return &Identity{
		UserID:   "chief-" + dept,
		Username: "chef_" + dept,
		Role:     &model.Role{Kind: model.RoleDepartmentChief, Department: dept},
	}
}

// setupFixture 独立内存库：DEFAULT + IRT + GM 部门，IRT/S1 下一门 20h CM / 10h TD 的课程 IRT31
func setupFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	db, err := database.NewMemoryDB(uuid.NewString())
	if err != nil {
		t.Fatalf("打开内存数据库失败: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	cfg := testConfig()
	repo := repository.NewRepository(db)
	f := &fixture{
		db:       db,
		repo:     repo,
		svc:      NewService(cfg, repo, jwt.NewManager(&cfg.Auth), nil, zap.NewNop()),
		chiefIRT: chief("IRT"),
		chiefGM:  chief("GM"),
		student:  &Identity{UserID: "student-1", Username: "etudiant", Role: &model.Role{Kind: model.RoleStudent}},
		admin:    &Identity{UserID: "admin-1", Username: "admin", IsSuperuser: true},
	}

	for _, d := range []model.Department{
		{Code: "IRT", Name: "Informatique et Réseaux"},
		{Code: "GM", Name: "Génie Mécanique"},
	} {
		dept := d
		if err := repo.Department.Create(ctx, &dept); err != nil {
			t.Fatalf("创建部门失败: %v", err)
		}
		if _, err := repo.Semester.EnsureAll(ctx, dept.Code); err != nil {
			t.Fatalf("补齐学期失败: %v", err)
		}
	}

	_, err = f.svc.Course.Upsert(ctx, f.chiefIRT, "IRT", "S1", "IRT31", &dto.UpsertCourseRequest{
		CourseFields: dto.CourseFields{
			Title:   "Réseaux",
			Credits: 4,
			CMHours: 20,
			TDHours: 10,
			CM:      dto.StaffInput{Professor: strPtr("Dupont"), Room: strPtr("A101")},
		},
	})
	if err != nil {
		t.Fatalf("创建课程失败: %v", err)
	}
	return f
}

func (f *fixture) placeCM(t *testing.T, week int, day model.Day, period model.Period) *dto.SlotResponse {
	t.Helper()
	resp, err := f.svc.Slot.PlaceSlot(context.Background(), f.chiefIRT, "IRT", "S1", &dto.SlotRequest{
		Week: week, Day: string(day), Period: string(period), Type: "cm", CourseCode: strPtr("IRT31"),
	})
	if err != nil {
		t.Fatalf("排课失败: %v", err)
	}
	return resp
}

func assertKind(t *testing.T, err, kind error) {
	t.Helper()
	if err == nil {
		t.Fatalf("期望错误类型 %v，实际无错误", kind)
	}
	if !errors.Is(err, kind) {
		t.Fatalf("期望错误类型 %v，实际 %v", kind, err)
	}
}

var (
	errValidation = apperrors.ErrValidation
	errNotFound   = apperrors.ErrNotFound
	errPermission = apperrors.ErrPermission
)
