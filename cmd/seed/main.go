package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/care-scheduler/internal/catalog"
	"github.com/BruksfildServices01/care-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/care-scheduler/internal/db"
	"github.com/BruksfildServices01/care-scheduler/internal/infra/cache"
	"github.com/BruksfildServices01/care-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/care-scheduler/internal/infra/storage"
	"github.com/BruksfildServices01/care-scheduler/internal/models"
)

func main() {
	doctorsFile := flag.String("doctors", "", "JSON roster of doctors (default: built-in sample roster)")
	portraitDir := flag.String("portraits", "", "directory of <email>.jpg|png portraits to upload to S3")
	medicinesFile := flag.String("medicines", "", "CSV medicine catalog to import")
	skipDoctors := flag.Bool("skip-doctors", false, "do not touch the doctor roster")
	flag.Parse()

	log, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	cfg := config.Load()
	if cfg.DBUrl == "" {
		log.Fatal("DATABASE_URL is not defined")
	}

	db, err := dbpkg.NewDB(cfg, log)
	if err != nil {
		log.Fatal("database unavailable", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	doctors := repository.NewDoctorGormRepository(db)

	var roster []models.Doctor
	if !*skipDoctors {
		roster, err = loadRoster(*doctorsFile)
		if err != nil {
			log.Fatal("load roster", zap.Error(err))
		}
		for i := range roster {
			if err := doctors.UpsertByEmail(ctx, &roster[i]); err != nil {
				log.Fatal("upsert doctor", zap.String("email", roster[i].Email), zap.Error(err))
			}
		}
		log.Info("doctors seeded", zap.Int("count", len(roster)))
	}

	if *portraitDir != "" && len(roster) > 0 {
		if err := uploadPortraits(ctx, cfg, log, doctors, roster, *portraitDir); err != nil {
			log.Fatal("upload portraits", zap.Error(err))
		}
	}

	if *medicinesFile != "" {
		f, err := os.Open(*medicinesFile)
		if err != nil {
			log.Fatal("open medicine catalog", zap.Error(err))
		}
		meds, err := catalog.ReadMedicines(f)
		_ = f.Close()
		if err != nil {
			log.Fatal("parse medicine catalog", zap.Error(err))
		}
		if err := repository.NewMedicineGormRepository(db).CreateBatch(ctx, meds); err != nil {
			log.Fatal("import medicines", zap.Error(err))
		}
		log.Info("medicines imported", zap.Int("count", len(meds)))
	}

	if !*skipDoctors {
		flushDirectory(ctx, cfg, log, doctors)
	}
}

func loadRoster(path string) ([]models.Doctor, error) {
	if path == "" {
		return catalog.SampleDoctors(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return catalog.ReadDoctors(f)
}

func uploadPortraits(
	ctx context.Context,
	cfg *config.Config,
	log *zap.Logger,
	doctors *repository.DoctorGormRepository,
	roster []models.Doctor,
	dir string,
) error {
	store, err := storage.NewPortraitStore(storage.NewS3Client(cfg), cfg)
	if err != nil {
		return err
	}

	for _, d := range roster {
		path, ok := findPortrait(dir, d.Email)
		if !ok {
			log.Debug("no portrait", zap.String("email", d.Email))
			continue
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		url, err := store.Upload(ctx, d.Email, f)
		_ = f.Close()
		if err != nil {
			return err
		}

		if err := doctors.UpdateImage(ctx, d.ID, url); err != nil {
			return err
		}
		log.Info("portrait uploaded", zap.String("email", d.Email), zap.String("url", url))
	}
	return nil
}

func findPortrait(dir, email string) (string, bool) {
	for _, ext := range []string{".jpg", ".jpeg", ".png"} {
		path := filepath.Join(dir, strings.ToLower(email)+ext)
		if _, err := os.Stat(path); err == nil {
			return path, true
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", false
		}
	}
	return "", false
}

// flushDirectory drops cached directory reads so the API serves the new roster.
func flushDirectory(ctx context.Context, cfg *config.Config, log *zap.Logger, doctors *repository.DoctorGormRepository) {
	client := cache.NewRedisClient(cfg)
	defer client.Close()

	dir := cache.NewDoctorDirectory(doctors, cache.NewRedisStore(client, "care"), cfg.DoctorCacheTTL, log)
	n, err := dir.Flush(ctx)
	if err != nil {
		log.Warn("doctor cache not flushed, entries expire on their own", zap.Error(err))
		return
	}
	log.Info("doctor cache flushed", zap.Int("keys", n))
}
