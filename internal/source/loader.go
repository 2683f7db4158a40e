package source

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/PhelGc/maria/internal/cache"
	"github.com/PhelGc/maria/internal/table"
)

// Nombres de las tres encuestas.
const (
	NameActive = "activos"
	NameLeaver = "egresos"
	NameHR     = "gestion_humana"
)

// Loader convierte ubicaciones en tablas, guardando el cuerpo descargado en
// la cache durante ttl. Cargas simultáneas de la misma ubicación comparten
// una sola descarga.
type Loader struct {
	fetcher Fetcher
	store   cache.Store
	ttl     time.Duration
	group   singleflight.Group
	logger  *zap.Logger
	now     func() time.Time
}

// NewLoader arma el cargador. store puede ser nil para no usar cache.
func NewLoader(f Fetcher, store cache.Store, ttl time.Duration, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{fetcher: f, store: store, ttl: ttl, logger: logger, now: time.Now}
}

// Load devuelve la tabla de la ubicación; cualquier fallo es un *FetchError.
func (l *Loader) Load(ctx context.Context, name, locator string) (*table.Table, error) {
	key := cache.Key(NormalizeExportURL(locator, "csv"))
	v, err, _ := l.group.Do(key, func() (any, error) {
		return l.load(ctx, name, locator, key)
	})
	if err != nil {
		return nil, err
	}
	t := *v.(*table.Table)
	t.Name = name
	return &t, nil
}

func (l *Loader) load(ctx context.Context, name, locator, key string) (*table.Table, error) {
	log := l.logger.With(zap.String("tabla", name), zap.String("cache_key", key))

	if e := l.cached(ctx, key, log); e != nil {
		t, err := table.Parse(name, e.Body)
		if err == nil {
			log.Debug("cache vigente", zap.Time("vence", e.ExpiresAt))
			return t, nil
		}
		log.Warn("cache ilegible, se descarga de nuevo", zap.Error(err))
	}

	body, contentType, err := l.fetcher.Fetch(ctx, locator)
	if err != nil {
		return nil, err
	}
	t, err := table.Parse(name, body)
	if errors.Is(err, table.ErrNoHeader) {
		return nil, empty(locator, err)
	}
	if err != nil {
		return nil, invalid(locator, err)
	}

	if l.store != nil && l.ttl > 0 {
		now := l.now()
		err := l.store.Put(ctx, &cache.Entry{
			Key:         key,
			Source:      locator,
			Body:        body,
			ContentType: contentType,
			FetchedAt:   now,
			ExpiresAt:   now.Add(l.ttl),
		})
		if err != nil {
			log.Warn("no se pudo guardar en cache", zap.Error(err))
		}
	}
	log.Info("tabla cargada", zap.Int("filas", t.Len()), zap.Int("columnas", len(t.Headers)))
	return t, nil
}

// cached devuelve la entrada vigente o nil. Los errores de la cache no
// impiden la descarga.
func (l *Loader) cached(ctx context.Context, key string, log *zap.Logger) *cache.Entry {
	if l.store == nil || l.ttl <= 0 {
		return nil
	}
	e, err := l.store.Get(ctx, key)
	if err != nil {
		log.Warn("error leyendo cache", zap.Error(err))
		return nil
	}
	if e == nil {
		log.Debug("cache sin entrada")
		return nil
	}
	if e.Expired(l.now()) {
		log.Debug("cache vencida", zap.Time("venció", e.ExpiresAt))
		return nil
	}
	return e
}

// Locators son las ubicaciones de las tres encuestas.
type Locators struct {
	Active string
	Leaver string
	HR     string
}

// Loaded es el resultado de LoadAll: cada tabla o su error.
type Loaded struct {
	Active *table.Table
	Leaver *table.Table
	HR     *table.Table
	Errors map[string]error
}

// OK indica si las tres fuentes cargaron.
func (r Loaded) OK() bool {
	return len(r.Errors) == 0
}

// LoadAll carga las tres encuestas en paralelo. Una fuente que falla no
// detiene a las demás; su error queda en Errors bajo el nombre de la tabla.
func (l *Loader) LoadAll(ctx context.Context, locs Locators) Loaded {
	var out Loaded
	targets := []struct {
		name    string
		locator string
		dst     **table.Table
	}{
		{NameActive, locs.Active, &out.Active},
		{NameLeaver, locs.Leaver, &out.Leaver},
		{NameHR, locs.HR, &out.HR},
	}

	errs := make([]error, len(targets))
	var g errgroup.Group
	for i, tg := range targets {
		g.Go(func() error {
			t, err := l.Load(ctx, tg.name, tg.locator)
			if err != nil {
				errs[i] = err
				return nil
			}
			*tg.dst = t
			return nil
		})
	}
	_ = g.Wait()

	for i, err := range errs {
		if err == nil {
			continue
		}
		if out.Errors == nil {
			out.Errors = make(map[string]error)
		}
		out.Errors[targets[i].name] = err
		l.logger.Error("fuente no disponible", zap.String("tabla", targets[i].name), zap.Error(err))
	}
	return out
}
