package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed baseline data if DB is empty (idempotent; safe to run every start)
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}
	if err := seedDemoOrders(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Divisions (catalog filter presets; position keeps display order)
CREATE TABLE IF NOT EXISTS divisions(
  name TEXT PRIMARY KEY,
  position INTEGER NOT NULL
);

-- Products
CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  brand_name TEXT NOT NULL,
  composition TEXT NOT NULL DEFAULT '',
  division TEXT NOT NULL DEFAULT 'General',
  packing TEXT NOT NULL DEFAULT '',
  mrp NUMERIC NOT NULL CHECK (mrp >= 0),
  stock_status TEXT NOT NULL CHECK (stock_status IN ('Available','Low Stock','Coming Soon','Out of Stock')),
  image_url TEXT NOT NULL DEFAULT '',
  visual_aid_url TEXT NOT NULL DEFAULT '',
  video_url TEXT NOT NULL DEFAULT '',
  launch_date TEXT NOT NULL DEFAULT '',
  is_trending INTEGER NOT NULL DEFAULT 0,
  tags_json TEXT NOT NULL DEFAULT '[]',
  is_promotional INTEGER NOT NULL DEFAULT 0,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_products_division ON products(division);
CREATE INDEX IF NOT EXISTS idx_products_brand    ON products(LOWER(brand_name));

-- Users & Sessions
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  username TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL CHECK (role IN ('ADMIN','STAFF','CUSTOMER')),
  is_blocked INTEGER NOT NULL DEFAULT 0,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,               -- same value as the 'sid' cookie
  user_id TEXT NULL REFERENCES users(id) ON DELETE SET NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen  TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);

-- Carts
CREATE TABLE IF NOT EXISTS carts(
  id TEXT PRIMARY KEY,
  session_id TEXT UNIQUE NOT NULL,
  updated_at TEXT
);

CREATE TABLE IF NOT EXISTS cart_items(
  cart_id    TEXT NOT NULL REFERENCES carts(id) ON DELETE CASCADE,
  product_id TEXT NOT NULL REFERENCES products(id) ON DELETE RESTRICT,
  qty INTEGER NOT NULL CHECK (qty >= 1),
  mrp_at_add NUMERIC NOT NULL,
  created_at TEXT,
  updated_at TEXT,
  PRIMARY KEY (cart_id, product_id)
);

-- Orders: the ledger. Status moves only through guarded UPDATEs.
CREATE TABLE IF NOT EXISTS orders(
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL REFERENCES users(id),
  user_name TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'Pending'
    CHECK (status IN ('Pending','Processing','Payment Requested','Payment Submitted','Dispatched','Cancelled')),
  total_inquiry_value NUMERIC NOT NULL,
  final_payable_amount NUMERIC NULL,
  invoice_url TEXT NOT NULL DEFAULT '',
  payment_proof_url TEXT NOT NULL DEFAULT '',
  docket_number TEXT NOT NULL DEFAULT '',
  transport_details TEXT NOT NULL DEFAULT '',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_orders_user       ON orders(user_id);
CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at);

-- Order lines snapshot the product; catalog edits never reach them.
CREATE TABLE IF NOT EXISTS order_lines(
  order_id   TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
  product_id TEXT NOT NULL,
  brand_name TEXT NOT NULL,
  packing TEXT NOT NULL DEFAULT '',
  mrp NUMERIC NOT NULL,
  quantity INTEGER NOT NULL CHECK (quantity >= 1),
  PRIMARY KEY (order_id, product_id)
);

-- Wishlists
CREATE TABLE IF NOT EXISTS wishlists(
  id TEXT PRIMARY KEY,
  session_id TEXT UNIQUE NOT NULL,
  updated_at TEXT
);

CREATE TABLE IF NOT EXISTS wishlist_items(
  wishlist_id TEXT NOT NULL REFERENCES wishlists(id) ON DELETE CASCADE,
  product_id  TEXT NOT NULL REFERENCES products(id) ON DELETE RESTRICT,
  created_at  TEXT,
  PRIMARY KEY (wishlist_id, product_id)
);

-- Company settings (single row), news ticker, banners
CREATE TABLE IF NOT EXISTS settings(
  id INTEGER PRIMARY KEY CHECK (id = 1),
  name TEXT NOT NULL,
  address TEXT NOT NULL DEFAULT '',
  phone TEXT NOT NULL DEFAULT '',
  logo_url TEXT NOT NULL DEFAULT '',
  whatsapp_number TEXT NOT NULL DEFAULT '',
  facebook_url TEXT NOT NULL DEFAULT '',
  instagram_url TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS news_ticker(
  position INTEGER PRIMARY KEY,
  headline TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS banners(
  id TEXT PRIMARY KEY,
  headline TEXT NOT NULL,
  subheadline TEXT NOT NULL DEFAULT '',
  image_url TEXT NOT NULL DEFAULT '',
  button_text TEXT NOT NULL DEFAULT '',
  link_to TEXT NOT NULL DEFAULT '',
  overlay_color TEXT NOT NULL DEFAULT '',
  position INTEGER NOT NULL DEFAULT 0
);
`
	_, err := db.Exec(schema)
	if err != nil {
		return err
	}
	log.Println("[schema] ensured")
	return nil
}
