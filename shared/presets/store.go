package presets

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"TerrainVision/shared/noise"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrNotFound indica que não existe preset com o nome pedido.
var ErrNotFound = errors.New("preset não encontrado")

// PresetModel representa o esquema do banco de dados para um preset.
// Só a configuração é guardada: o terreno é sempre regenerado a partir dela.
type PresetModel struct {
	Name        string `gorm:"primaryKey"`
	Kind        string
	Seed        int64
	Octaves     int
	Persistence float64
	Lacunarity  float64
	Scale       float64
	HeightScale float64
	GridSize    int
	UpdatedAt   time.Time // Para controle interno do GORM
}

// Metadata armazena informações globais do banco.
type Metadata struct {
	Key   string `gorm:"primaryKey"`
	Value string
}

const CurrentFormatVersion = 1

// Preset é uma configuração de terreno nomeada.
type Preset struct {
	Name      string
	Noise     noise.Config
	GridSize  int
	UpdatedAt time.Time
}

// Store guarda presets num arquivo SQLite.
type Store struct {
	DB   *gorm.DB
	path string
}

// Open abre (ou cria) o banco de presets e roda as migrações.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}

	// Configuramos o logger para ser silencioso em produção
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("falha ao conectar no SQLite: %w", err)
	}

	if err := db.AutoMigrate(&PresetModel{}, &Metadata{}); err != nil {
		closeDB(db)
		return nil, fmt.Errorf("falha na migração do banco: %w", err)
	}
	if err := db.Save(&Metadata{Key: "FormatVersion", Value: fmt.Sprint(CurrentFormatVersion)}).Error; err != nil {
		closeDB(db)
		return nil, fmt.Errorf("falha ao gravar metadados: %w", err)
	}

	log.Printf("[Presets] Banco de dados SQLite aberto: %s", path)
	return &Store{DB: db, path: path}, nil
}

// Save cria ou atualiza um preset. A configuração é validada antes de gravar.
func (s *Store) Save(p Preset) error {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return fmt.Errorf("nome de preset vazio")
	}
	if p.GridSize < 0 {
		return fmt.Errorf("%w: tamanho da grade negativo (%d)", noise.ErrInvalidConfig, p.GridSize)
	}
	if err := p.Noise.Validate(); err != nil {
		return err
	}

	model := PresetModel{
		Name:        name,
		Kind:        p.Noise.Kind.String(),
		Seed:        p.Noise.Seed,
		Octaves:     p.Noise.Octaves,
		Persistence: p.Noise.Persistence,
		Lacunarity:  p.Noise.Lacunarity,
		Scale:       p.Noise.Scale,
		HeightScale: p.Noise.HeightScale,
		GridSize:    p.GridSize,
	}

	// Upsert (Cria ou Atualiza)
	if err := s.DB.Save(&model).Error; err != nil {
		log.Printf("[Presets] ERRO ao salvar preset %q: %v", name, err)
		return err
	}
	log.Printf("[Presets] Preset %q salvo (%s, grade %d)", name, p.Noise, p.GridSize)
	return nil
}

// Load busca um preset pelo nome. Retorna ErrNotFound se ele não existir.
func (s *Store) Load(name string) (Preset, error) {
	var model PresetModel
	err := s.DB.First(&model, "name = ?", strings.TrimSpace(name)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Preset{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if err != nil {
		return Preset{}, err
	}
	return model.toPreset()
}

// List retorna todos os presets em ordem alfabética.
func (s *Store) List() ([]Preset, error) {
	var models []PresetModel
	if err := s.DB.Order("name").Find(&models).Error; err != nil {
		return nil, err
	}

	out := make([]Preset, 0, len(models))
	for _, m := range models {
		p, err := m.toPreset()
		if err != nil {
			log.Printf("[Presets] Ignorando preset %q corrompido: %v", m.Name, err)
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// Delete remove um preset. Retorna ErrNotFound se ele não existir.
func (s *Store) Delete(name string) error {
	res := s.DB.Delete(&PresetModel{}, "name = ?", strings.TrimSpace(name))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return nil
}

// Close fecha a conexão com o banco.
func (s *Store) Close() error {
	return closeDB(s.DB)
}

func closeDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (m PresetModel) toPreset() (Preset, error) {
	kind, err := noise.ParseKind(m.Kind)
	if err != nil {
		return Preset{}, err
	}
	cfg := noise.Config{
		Kind:        kind,
		Seed:        m.Seed,
		Octaves:     m.Octaves,
		Persistence: m.Persistence,
		Lacunarity:  m.Lacunarity,
		Scale:       m.Scale,
		HeightScale: m.HeightScale,
	}
	if err := cfg.Validate(); err != nil {
		return Preset{}, err
	}
	return Preset{Name: m.Name, Noise: cfg, GridSize: m.GridSize, UpdatedAt: m.UpdatedAt}, nil
}
