package database

import (
	"testing"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"VidTube.com/cmd/model"
)

func TestTranslate(t *testing.T) {
	if Translate(nil, "x") != nil {
		t.Fatal("nil not preserved")
	}
	if err := Translate(errors.Wrap(gorm.ErrRecordNotFound, "find"), "find"); err != model.ErrNotFound {
		t.Fatalf("not found = %v", err)
	}
	if err := Translate(gorm.ErrDuplicatedKey, "create"); err != model.ErrDuplicate {
		t.Fatalf("duplicate = %v", err)
	}
	boom := errors.New("boom")
	err := Translate(boom, "create video %d", 1)
	if !errors.Is(err, boom) || err.Error() != "create video 1: boom" {
		t.Fatalf("wrapped = %v", err)
	}
}

func TestDryRunRendersSQL(t *testing.T) {
	db, err := DryRun()
	if err != nil {
		t.Fatal(err)
	}
	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return tx.Model(&model.Video{}).Where("id = ?", 5).Find(&[]model.Video{})
	})
	if sql != "SELECT * FROM `videos` WHERE id = 5" {
		t.Fatalf("sql = %s", sql)
	}
}
