// Command seeder bulk-loads listing documents from a JSON lines file:
// it embeds each listing, writes the hashes, and creates the FT index.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/bom70489/YDP/internal/config"
	"github.com/bom70489/YDP/internal/db"
	dbRedis "github.com/bom70489/YDP/internal/db/redis"
	"github.com/bom70489/YDP/internal/domain/listing"
	logpkg "github.com/bom70489/YDP/internal/logger"
	"github.com/bom70489/YDP/internal/metrics"
	searchrepo "github.com/bom70489/YDP/internal/repository/search"
	openaiT "github.com/bom70489/YDP/internal/transport/openai"
)

// HNSW build parameters for the listing index.
const (
	hnswM           = 32
	hnswEFConstruct = 400
)

func main() {
	var (
		file      = flag.String("file", "", "path to a JSON lines file with listing documents")
		batchSize = flag.Int("batch", 64, "documents embedded per provider call")
		recreate  = flag.Bool("recreate", false, "drop and recreate the FT index before loading")
	)
	flag.Parse()

	_ = godotenv.Load()

	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	if *file == "" {
		logger.Fatal("-file is required")
	}
	if *batchSize <= 0 {
		logger.Fatal("-batch must be positive")
	}

	metrics.RegisterEmbeddingMetrics()

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Redis.Addrs,
		Password: cfg.Redis.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create redis store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Redis.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Redis not ready", zap.Error(err))
	}

	embedder := openaiT.NewEmbedder(&openaiT.Config{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Provider:   "openai",
		Logger:     logger,
	})

	loader := &loader{
		store:    store,
		embedder: embedder,
		logger:   logger,
		recreate: *recreate,
	}

	loaded, skipped, err := loader.Run(ctx, *file, *batchSize)
	if err != nil {
		logger.Fatal("Seeding failed", zap.Error(err))
	}

	logger.Info("Seeding finished",
		zap.Int("loaded", loaded),
		zap.Int("skipped", skipped),
	)
}

type seedStore interface {
	db.HashStore
	db.IndexManager
}

type loader struct {
	store    seedStore
	embedder *openaiT.Embedder
	logger   *zap.Logger
	recreate bool

	indexReady bool
}

// Run streams the file in embedding-sized batches. The index is created
// after the first batch, once the actual vector dimension is known.
func (l *loader) Run(ctx context.Context, path string, batchSize int) (loaded, skipped int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 1024*1024), 4*1024*1024)

	var batch []record
	line := 0
	for scanner.Scan() {
		line++
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" {
			continue
		}

		rec, err := parseRecord([]byte(raw))
		if err != nil {
			l.logger.Warn("skipping malformed line", zap.Int("line", line), zap.Error(err))
			skipped++
			continue
		}
		if rec.embedText == "" {
			l.logger.Warn("skipping listing without text", zap.Int("line", line), zap.String("id", rec.id))
			skipped++
			continue
		}

		batch = append(batch, rec)
		if len(batch) >= batchSize {
			n, err := l.flush(ctx, batch)
			if err != nil {
				return loaded, skipped, err
			}
			loaded += n
			batch = batch[:0]
		}
	}
	if err := scanner.Err(); err != nil {
		return loaded, skipped, fmt.Errorf("read %s: %w", path, err)
	}

	if len(batch) > 0 {
		n, err := l.flush(ctx, batch)
		if err != nil {
			return loaded, skipped, err
		}
		loaded += n
	}

	return loaded, skipped, nil
}

func (l *loader) flush(ctx context.Context, batch []record) (int, error) {
	texts := make([]string, len(batch))
	for i, rec := range batch {
		texts[i] = rec.embedText
	}

	res, err := l.embedder.BatchEmbed(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("embed batch: %w", err)
	}
	if len(res.Embeddings) != len(batch) {
		return 0, fmt.Errorf("embed batch: got %d vectors for %d documents", len(res.Embeddings), len(batch))
	}

	if !l.indexReady {
		if err := l.ensureIndex(ctx, len(res.Embeddings[0])); err != nil {
			return 0, err
		}
		l.indexReady = true
	}

	items := make([]db.HashSetItem, len(batch))
	for i, rec := range batch {
		fields := make(map[string]string, len(rec.fields)+1)
		for k, v := range rec.fields {
			fields[k] = v
		}
		fields[listing.FieldVector] = dbRedis.VectorBlob(res.Embeddings[i])
		items[i] = db.HashSetItem{
			Key:    searchrepo.KeyPrefix + rec.id,
			Fields: fields,
		}
	}

	if err := l.store.HSetMulti(ctx, items); err != nil {
		return 0, fmt.Errorf("write batch: %w", err)
	}

	l.logger.Debug("batch loaded",
		zap.Int("documents", len(batch)),
		zap.Int("tokens", res.TotalTokens),
	)
	return len(batch), nil
}

func (l *loader) ensureIndex(ctx context.Context, dim int) error {
	if l.recreate {
		if err := l.store.DropIndex(ctx, searchrepo.IndexName); err != nil && !errors.Is(err, db.ErrIndexNotFound) {
			return fmt.Errorf("drop index: %w", err)
		}
	}

	def, err := db.NewIndex(searchrepo.IndexName).
		Prefix(searchrepo.KeyPrefix).
		Tag(listing.FieldCategoryID).
		VectorHNSW(listing.FieldVector, dim, db.DistanceCosine, hnswM, hnswEFConstruct).
		Build()
	if err != nil {
		return fmt.Errorf("build index definition: %w", err)
	}

	if err := l.store.CreateIndex(ctx, def); err != nil {
		if errors.Is(err, db.ErrIndexExists) {
			l.logger.Info("index already exists", zap.String("index", searchrepo.IndexName))
			return nil
		}
		return fmt.Errorf("create index: %w", err)
	}

	l.logger.Info("index created",
		zap.String("index", searchrepo.IndexName),
		zap.Int("dimensions", dim),
	)
	return nil
}

// record is one listing parsed from the input file.
type record struct {
	id        string
	embedText string
	fields    map[string]string
}

// storedFields are the document keys copied into the hash verbatim.
var storedFields = []string{
	listing.FieldTitle,
	listing.FieldPrice,
	listing.FieldDescription,
	listing.FieldBedrooms,
	listing.FieldBathrooms,
	listing.FieldArea,
	listing.FieldLocation,
	listing.FieldGeo,
	listing.FieldImage,
	listing.FieldCategoryID,
}

// parseRecord decodes one JSON document. Upstream feeds are dirty, so
// values are stringified leniently rather than validated: numbers and
// strings pass through, nested objects (geo) are re-encoded as JSON.
func parseRecord(raw []byte) (record, error) {
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return record{}, fmt.Errorf("decode document: %w", err)
	}

	id := fieldString(doc["_id"])
	if id == "" {
		id = fieldString(doc["id"])
	}
	if id == "" {
		return record{}, errors.New("document has no id")
	}

	fields := make(map[string]string, len(storedFields))
	for _, name := range storedFields {
		if v, ok := doc[name]; ok {
			if s := fieldString(v); s != "" {
				fields[name] = s
			}
		}
	}

	text := strings.TrimSpace(fields[listing.FieldTitle] + " " + fields[listing.FieldDescription])

	return record{id: id, embedText: text, fields: fields}, nil
}

func fieldString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		// geo and other structured values are stored as JSON
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
