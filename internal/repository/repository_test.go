package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"emploi/internal/model"
	"emploi/internal/repository"
	"emploi/pkg/database"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

type fixture struct {
	db       *gorm.DB
	repos    *repository.Repository
	semester *model.Semester
	course   *model.Course
}

func strPtr(s string) *string { return &s }

// setupFixture 打开独立的内存库，写入 IRT 部门、S1–S4 学期与一门 20h CM 课程
func setupFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	db, err := database.NewMemoryDB(uuid.NewString())
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	repos := repository.NewRepository(db)
	require.NoError(t, repos.Department.Create(ctx, &model.Department{Code: "IRT", Name: "Informatique et Réseaux"}))

	sems, err := repos.Semester.EnsureAll(ctx, "IRT")
	require.NoError(t, err)
	require.Len(t, sems, 4)

	course := &model.Course{
		Code:           "IRT31",
		DepartmentCode: "IRT",
		SemesterID:     sems[0].SemesterID,
		Title:          "Réseaux",
		Credits:        4,
		CMHours:        20,
		TDHours:        10,
	}
	require.NoError(t, repos.Course.Create(ctx, course))

	return &fixture{db: db, repos: repos, semester: &sems[0], course: course}
}

func (f *fixture) place(t *testing.T, a *model.CourseAssignment, week int, day model.Day, period model.Period) *model.TimeSlot {
	t.Helper()
	slot := &model.TimeSlot{Week: week, Day: day, Period: period, AssignmentID: &a.AssignmentID}
	require.NoError(t, f.repos.TimeSlot.ReplaceInCell(context.Background(), slot))
	return slot
}

func (f *fixture) countSlots(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&model.TimeSlot{}).Count(&n).Error)
	return n
}

// ═══════════════════════════════════════════════════════════
// Seed / Semester
// ═══════════════════════════════════════════════════════════

func TestSeed_DefaultScopeExists(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	dept, err := f.repos.Department.GetByCode(ctx, model.DefaultDepartmentCode)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultDepartmentName, dept.Name)

	sem, err := f.repos.Semester.GetByID(ctx, model.DefaultSemesterID)
	require.NoError(t, err)
	assert.Equal(t, model.SemesterS1, sem.Code)

	// 重复执行不报错
	require.NoError(t, database.Seed(f.db, nil, zap.NewNop()))
}

func TestDepartmentRepo_ListHidesDefault(t *testing.T) {
	f := setupFixture(t)

	depts, err := f.repos.Department.List(context.Background())
	require.NoError(t, err)
	require.Len(t, depts, 1)
	assert.Equal(t, "IRT", depts[0].Code)
}

func TestSemesterRepo_EnsureAllIdempotent(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	sems, err := f.repos.Semester.EnsureAll(ctx, "IRT")
	require.NoError(t, err)
	require.Len(t, sems, 4)
	assert.Equal(t, f.semester.SemesterID, sems[0].SemesterID)

	got, err := f.repos.Semester.GetByCode(ctx, "IRT", model.SemesterS3)
	require.NoError(t, err)
	assert.Equal(t, model.SemesterS3, got.Code)
}

// ═══════════════════════════════════════════════════════════
// Assignment / TimeSlot
// ═══════════════════════════════════════════════════════════

func TestAssignmentRepo_FindOrCreateReuses(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	a1, created, err := f.repos.Assignment.FindOrCreate(ctx, "IRT31", model.TypeCM, "IRT", f.semester.SemesterID)
	require.NoError(t, err)
	assert.True(t, created)

	a2, created, err := f.repos.Assignment.FindOrCreate(ctx, "IRT31", model.TypeCM, "IRT", f.semester.SemesterID)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, a1.AssignmentID, a2.AssignmentID)

	td, _, err := f.repos.Assignment.FindOrCreate(ctx, "IRT31", model.TypeTD, "IRT", f.semester.SemesterID)
	require.NoError(t, err)
	assert.NotEqual(t, a1.AssignmentID, td.AssignmentID)
}

func TestAssignmentRepo_RejectsInconsistentSpecial(t *testing.T) {
	f := setupFixture(t)

	err := f.repos.Assignment.Create(context.Background(), &model.CourseAssignment{
		Type:       model.TypeSpecial,
		IsSpecial:  true,
		CourseCode: strPtr("IRT31"),
	})
	assert.Error(t, err)
}

func TestTimeSlotRepo_ReplaceInCell(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	cm, _, err := f.repos.Assignment.FindOrCreate(ctx, "IRT31", model.TypeCM, "IRT", f.semester.SemesterID)
	require.NoError(t, err)
	td, _, err := f.repos.Assignment.FindOrCreate(ctx, "IRT31", model.TypeTD, "IRT", f.semester.SemesterID)
	require.NoError(t, err)

	f.place(t, cm, 1, model.DayMonday, model.PeriodP1)
	f.place(t, cm, 1, model.DayMonday, model.PeriodP1)
	assert.EqualValues(t, 1, f.countSlots(t), "同一分配同一格应被替换")

	f.place(t, td, 1, model.DayMonday, model.PeriodP1)
	assert.EqualValues(t, 2, f.countSlots(t), "不同分配可共享同一格")

	found, err := f.repos.TimeSlot.FindInScope(ctx, "IRT", f.semester.SemesterID, 1, model.DayMonday, model.PeriodP1)
	require.NoError(t, err)
	assert.Len(t, found, 2)

	found, err = f.repos.TimeSlot.FindInScope(ctx, "IRT", f.semester.SemesterID, 2, model.DayMonday, model.PeriodP1)
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestTimeSlotRepo_CountByType(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	cm, _, err := f.repos.Assignment.FindOrCreate(ctx, "IRT31", model.TypeCM, "IRT", f.semester.SemesterID)
	require.NoError(t, err)
	for week := 1; week <= 3; week++ {
		f.place(t, cm, week, model.DayTuesday, model.PeriodP2)
	}

	counts, err := f.repos.TimeSlot.CountByType(ctx, "IRT31")
	require.NoError(t, err)
	assert.EqualValues(t, 3, counts[model.TypeCM])
	assert.EqualValues(t, 0, counts[model.TypeTD])
}

func TestTimeSlotRepo_ListPlanIncludesSpecials(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	cm, _, err := f.repos.Assignment.FindOrCreate(ctx, "IRT31", model.TypeCM, "IRT", f.semester.SemesterID)
	require.NoError(t, err)
	f.place(t, cm, 1, model.DayMonday, model.PeriodP1)

	special := &model.CourseAssignment{
		Type:           model.TypeSpecial,
		IsSpecial:      true,
		Description:    strPtr("Forum entreprises"),
		DepartmentCode: strPtr("IRT"),
		SemesterID:     &f.semester.SemesterID,
	}
	require.NoError(t, f.repos.Assignment.Create(ctx, special))
	f.place(t, special, 2, model.DayFriday, model.PeriodP3)

	all, err := f.repos.TimeSlot.ListPlan(ctx, "IRT", f.semester.SemesterID, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.NotNil(t, all[0].Assignment)
	require.NotNil(t, all[0].Assignment.Course)
	assert.Equal(t, "IRT31", all[0].Assignment.Course.Code)
	assert.True(t, all[1].Assignment.IsSpecial)

	week := 2
	onlyWeek2, err := f.repos.TimeSlot.ListPlan(ctx, "IRT", f.semester.SemesterID, &week)
	require.NoError(t, err)
	require.Len(t, onlyWeek2, 1)
	assert.Equal(t, "Forum entreprises", *onlyWeek2[0].Assignment.Description)
}

func TestTimeSlotRepo_DeleteMissing(t *testing.T) {
	f := setupFixture(t)

	err := f.repos.TimeSlot.Delete(context.Background(), uuid.NewString())
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

// ═══════════════════════════════════════════════════════════
// Delete behaviour
// ═══════════════════════════════════════════════════════════

func TestProfessorRepo_DeleteNullsAssignments(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	prof, err := f.repos.Professor.GetOrCreateByName(ctx, "Diallo")
	require.NoError(t, err)
	again, err := f.repos.Professor.GetOrCreateByName(ctx, "Diallo")
	require.NoError(t, err)
	assert.Equal(t, prof.ProfessorID, again.ProfessorID)

	cm, _, err := f.repos.Assignment.FindOrCreate(ctx, "IRT31", model.TypeCM, "IRT", f.semester.SemesterID)
	require.NoError(t, err)
	require.NoError(t, f.repos.Assignment.SetStaff(ctx, cm.AssignmentID, &prof.ProfessorID, nil))

	inScope, err := f.repos.Professor.ListByScope(ctx, "IRT", f.semester.SemesterID)
	require.NoError(t, err)
	require.Len(t, inScope, 1)

	require.NoError(t, f.repos.Professor.Delete(ctx, prof.ProfessorID))

	got, err := f.repos.Assignment.GetByID(ctx, cm.AssignmentID)
	require.NoError(t, err)
	assert.Nil(t, got.ProfessorID)
	assert.Equal(t, "Non assigné", got.ProfessorName())

	assert.True(t, errors.Is(f.repos.Professor.Delete(ctx, prof.ProfessorID), gorm.ErrRecordNotFound))
}

func TestRoomRepo_DeleteNullsAssignments(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	room, err := f.repos.Room.GetOrCreateByNumber(ctx, "A101", "TD")
	require.NoError(t, err)
	assert.Equal(t, "TD", room.Type)

	td, _, err := f.repos.Assignment.FindOrCreate(ctx, "IRT31", model.TypeTD, "IRT", f.semester.SemesterID)
	require.NoError(t, err)
	require.NoError(t, f.repos.Assignment.SetStaff(ctx, td.AssignmentID, nil, &room.RoomID))

	require.NoError(t, f.repos.Room.Delete(ctx, room.RoomID))

	got, err := f.repos.Assignment.GetByID(ctx, td.AssignmentID)
	require.NoError(t, err)
	assert.Nil(t, got.RoomID)
	assert.Nil(t, got.RoomNumber())
}

func TestCourseRepo_DeleteCascades(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	cm, _, err := f.repos.Assignment.FindOrCreate(ctx, "IRT31", model.TypeCM, "IRT", f.semester.SemesterID)
	require.NoError(t, err)
	f.place(t, cm, 1, model.DayMonday, model.PeriodP1)

	require.NoError(t, f.repos.Course.Delete(ctx, "IRT31"))

	_, err = f.repos.Assignment.GetByID(ctx, cm.AssignmentID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
	assert.EqualValues(t, 0, f.countSlots(t))

	assert.True(t, errors.Is(f.repos.Course.Delete(ctx, "IRT31"), gorm.ErrRecordNotFound))
}

func TestCourseRepo_UpdateCompleted(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	require.NoError(t, f.repos.Course.UpdateCompleted(ctx, "IRT31", 12, 1.5, 0))

	got, err := f.repos.Course.GetInScope(ctx, "IRT", f.semester.SemesterID, "IRT31")
	require.NoError(t, err)
	assert.Equal(t, 12.0, got.CMCompleted)
	assert.Equal(t, 1.5, got.TDCompleted)

	_, err = f.repos.Course.GetInScope(ctx, "IRT", model.DefaultSemesterID, "IRT31")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestDepartmentRepo_DeleteCascades(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	cm, _, err := f.repos.Assignment.FindOrCreate(ctx, "IRT31", model.TypeCM, "IRT", f.semester.SemesterID)
	require.NoError(t, err)
	f.place(t, cm, 1, model.DayMonday, model.PeriodP1)

	user := &model.User{
		Username:     "chef.irt",
		PasswordHash: "x",
		Profile:      &model.Profile{RoleTag: model.ChiefRoleTag("IRT"), DepartmentCode: strPtr("IRT")},
	}
	require.NoError(t, f.repos.User.Create(ctx, user))

	require.NoError(t, f.repos.Department.Delete(ctx, "IRT"))

	_, err = f.repos.Course.GetByCode(ctx, "IRT31")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
	sems, err := f.repos.Semester.ListByDepartment(ctx, "IRT")
	require.NoError(t, err)
	assert.Empty(t, sems)
	assert.EqualValues(t, 0, f.countSlots(t))

	got, err := f.repos.User.GetByUsername(ctx, "chef.irt")
	require.NoError(t, err)
	require.NotNil(t, got.Profile)
	assert.Nil(t, got.Profile.DepartmentCode)
}

func TestUserRepo_CreateWithProfile(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	user := &model.User{
		Username:     "etudiant",
		PasswordHash: "x",
		Profile:      &model.Profile{RoleTag: model.StudentRoleTag()},
	}
	require.NoError(t, f.repos.User.Create(ctx, user))
	require.NotEmpty(t, user.UserID)

	got, err := f.repos.User.GetByID(ctx, user.UserID)
	require.NoError(t, err)
	require.NotNil(t, got.Profile)
	role, err := got.Profile.Role()
	require.NoError(t, err)
	assert.True(t, role.IsStudent())

	bad := &model.User{Username: "x", PasswordHash: "x", Profile: &model.Profile{RoleTag: "ADMIN"}}
	assert.Error(t, f.repos.User.Create(ctx, bad))
	_, err = f.repos.User.GetByUsername(ctx, "x")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound), "档案非法时用户不应写入")

	require.NoError(t, f.repos.User.Delete(ctx, user.UserID))
	_, err = f.repos.User.GetByID(ctx, user.UserID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

// ═══════════════════════════════════════════════════════════
// Schema / Transaction
// ═══════════════════════════════════════════════════════════

type foreignKey struct {
	Table    string `gorm:"column:table"`
	From     string `gorm:"column:from"`
	To       string `gorm:"column:to"`
	OnDelete string `gorm:"column:on_delete"`
}

func foreignKeys(t *testing.T, db *gorm.DB, table string) map[string]foreignKey {
	t.Helper()
	var rows []foreignKey
	require.NoError(t, db.Raw("PRAGMA foreign_key_list(" + table + ")").Scan(&rows).Error)
	out := make(map[string]foreignKey, len(rows))
	for _, r := range rows {
		out[r.From] = r
	}
	return out
}

// 外键必须建在子表上并指向父表主键
func TestAutoMigrate_ForeignKeysOnChildTables(t *testing.T) {
	f := setupFixture(t)

	courses := foreignKeys(t, f.db, "courses")
	require.Len(t, courses, 2)
	assert.Equal(t, foreignKey{Table: "semesters", From: "semester_id", To: "semester_id", OnDelete: "CASCADE"}, courses["semester_id"])
	assert.Equal(t, "departments", courses["department_code"].Table)

	assignments := foreignKeys(t, f.db, "course_assignments")
	require.Len(t, assignments, 5)
	assert.Equal(t, "courses", assignments["course_code"].Table)
	assert.Equal(t, foreignKey{Table: "professors", From: "professor_id", To: "professor_id", OnDelete: "SET NULL"}, assignments["professor_id"])
	assert.Equal(t, foreignKey{Table: "rooms", From: "room_id", To: "room_id", OnDelete: "SET NULL"}, assignments["room_id"])
	assert.Equal(t, "semesters", assignments["semester_id"].Table)
	assert.Equal(t, "departments", assignments["department_code"].Table)

	slots := foreignKeys(t, f.db, "time_slots")
	require.Len(t, slots, 1)
	assert.Equal(t, foreignKey{Table: "course_assignments", From: "course_assignment_id", To: "assignment_id", OnDelete: "CASCADE"}, slots["course_assignment_id"])

	// 父表不反向引用子表
	semesters := foreignKeys(t, f.db, "semesters")
	require.Len(t, semesters, 1)
	assert.Equal(t, "departments", semesters["department_code"].Table)
	assert.Empty(t, foreignKeys(t, f.db, "professors"))
	assert.Empty(t, foreignKeys(t, f.db, "rooms"))
}

func TestAutoMigrate_RejectsOrphans(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	orphan := &model.Course{Code: "IRT99", DepartmentCode: "IRT", SemesterID: uuid.NewString(), Title: "Orpheline"}
	assert.Error(t, f.repos.Course.Create(ctx, orphan))

	ghost := uuid.NewString()
	assert.Error(t, f.db.Create(&model.TimeSlot{Week: 1, Day: model.DayMonday, Period: model.PeriodP1, AssignmentID: &ghost}).Error)
}

func TestRepository_TransactionRollsBack(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	boom := errors.New("中止")
	err := f.repos.Transaction(ctx, func(tx *repository.Repository) error {
		if _, err := tx.Professor.GetOrCreateByName(ctx, "Martin"); err != nil {
			return err
		}
		if _, _, err := tx.Assignment.FindOrCreate(ctx, f.course.Code, model.TypeTD, "IRT", f.semester.SemesterID); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	var n int64
	require.NoError(t, f.db.Model(&model.Professor{}).Where("name = ?", "Martin").Count(&n).Error)
	assert.EqualValues(t, 0, n)
	require.NoError(t, f.db.Model(&model.CourseAssignment{}).Where("course_code = ?", f.course.Code).Count(&n).Error)
	assert.EqualValues(t, 0, n)

	// 成功路径正常提交
	require.NoError(t, f.repos.Transaction(ctx, func(tx *repository.Repository) error {
		_, err := tx.Professor.GetOrCreateByName(ctx, "Martin")
		return err
	}))
	require.NoError(t, f.db.Model(&model.Professor{}).Where("name = ?", "Martin").Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

// [自证通过] internal/repository/repository_test.go
