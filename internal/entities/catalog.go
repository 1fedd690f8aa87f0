package entities

// Book is a catalog entry. Titles are kept unique at the application level
// (the upsert handler rejects duplicates); there is no DB constraint on it.
type Book struct {
	ID      uint         `gorm:"primaryKey" json:"id"`
	Title   string       `gorm:"index;size:512" json:"title"`
	Sector  string       `gorm:"size:256" json:"sector"`
	Authors []BookAuthor `gorm:"foreignKey:BookID" json:"authors,omitempty"`
	Themes  []BookTheme  `gorm:"foreignKey:BookID" json:"themes,omitempty"`
}

// Person is an author, or the identity a user account is linked to.
// Name is the natural key used for matching during reconciliation
// (exact, case-sensitive).
type Person struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"index;size:256" json:"name"`
}

// Theme is a categorical tag attachable to multiple books. Value is the
// natural key (exact, case-sensitive).
type Theme struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Value string `gorm:"index;size:256" json:"value"`
}

// BookAuthor joins books and people. Composite primary key; rows cascade
// away with either parent.
type BookAuthor struct {
	BookID   uint   `gorm:"primaryKey" json:"book_id"`
	AuthorID uint   `gorm:"primaryKey;index" json:"author_id"`
	Book     Book   `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE" json:"-"`
	Author   Person `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author,omitempty"`
}

// BookTheme joins books and themes. Composite primary key; rows cascade
// away with either parent.
type BookTheme struct {
	BookID  uint  `gorm:"primaryKey" json:"book_id"`
	ThemeID uint  `gorm:"primaryKey;index" json:"theme_id"`
	Book    Book  `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE" json:"-"`
	Theme   Theme `gorm:"foreignKey:ThemeID;constraint:OnDelete:CASCADE" json:"theme,omitempty"`
}

// Permission levels for user accounts.
const (
	PermissionAdmin = 1
)

type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	PersonID     uint   `gorm:"index" json:"person_id"`
	Email        string `gorm:"size:255" json:"email"`
	Login        string `gorm:"uniqueIndex;size:100" json:"login"`
	PasswordHash string `gorm:"size:255" json:"-"`
	Permission   int    `json:"permission"`
	Person       Person `gorm:"foreignKey:PersonID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Book) TableName() string {
	return "books"
}

func (Person) TableName() string {
	return "people"
}

func (Theme) TableName() string {
	return "themes"
}

func (BookAuthor) TableName() string {
	return "book_authors"
}

func (BookTheme) TableName() string {
	return "book_themes"
}

func (User) TableName() string {
	return "users"
}

// AuthorNames projects a book's author links to plain names, in link order.
func (b *Book) AuthorNames() []string {
	names := make([]string, 0, len(b.Authors))
	for _, link := range b.Authors {
		names = append(names, link.Author.Name)
	}
	return names
}

// ThemeValues projects a book's theme links to plain values, in link order.
func (b *Book) ThemeValues() []string {
	values := make([]string, 0, len(b.Themes))
	for _, link := range b.Themes {
		values = append(values, link.Theme.Value)
	}
	return values
}
