// repository/catalog/seed.go
package catalog

import "github.com/feregc/BiblioTech/model"

// seedBooks returns the built-in storefront catalog. Prices are purchase
// prices in currency units; rental pricing is derived from them.
func seedBooks() []model.Book {
	return []model.Book{
		{ID: 1, Title: "Don Quixote", Author: "Miguel de Cervantes", Category: "Clásicos", Year: 1605, ISBN: "978-84-376-0001-3", Pages: 863, Language: "Español", Publisher: "Editorial Planeta", Available: true, Rating: 4.6, Price: 19.95},
		{ID: 2, Title: "One Hundred Years of Solitude", Author: "Gabriel García Márquez", Category: "Realismo Mágico", Year: 1967, ISBN: "978-84-376-0002-1", Pages: 417, Language: "Español", Publisher: "Editorial Sudamericana", Available: true, Rating: 4.8, Price: 16.50},
		{ID: 3, Title: "Pride and Prejudice", Author: "Jane Austen", Category: "Clásicos", Year: 1813, ISBN: "978-84-376-0003-8", Pages: 432, Language: "Inglés", Publisher: "Penguin Classics", Available: true, Rating: 4.5, Price: 12.00},
		{ID: 4, Title: "Dune", Author: "Frank Herbert", Category: "Ciencia Ficción", Year: 1965, ISBN: "978-84-376-0004-5", Pages: 412, Language: "Inglés", Publisher: "Ace Books", Available: true, Rating: 4.7, Price: 18.25},
		{ID: 5, Title: "Foundation", Author: "Isaac Asimov", Category: "Ciencia Ficción", Year: 1951, ISBN: "978-84-376-0005-2", Pages: 255, Language: "Inglés", Publisher: "Gnome Press", Available: false, Rating: 4.4, Price: 14.75},
		{ID: 6, Title: "The Name of the Rose", Author: "Umberto Eco", Category: "Misterio", Year: 1980, ISBN: "978-84-376-0006-9", Pages: 512, Language: "Español", Publisher: "Editorial Lumen", Available: true, Rating: 4.3, Price: 17.80},
		{ID: 7, Title: "The Adventures of Sherlock Holmes", Author: "Arthur Conan Doyle", Category: "Misterio", Year: 1892, ISBN: "978-84-376-0007-6", Pages: 307, Language: "Inglés", Publisher: "George Newnes", Available: true, Rating: 4.6, Price: 11.40},
		{ID: 8, Title: "Me Before You", Author: "Jojo Moyes", Category: "Romance", Year: 2012, ISBN: "978-84-376-0008-3", Pages: 369, Language: "Español", Publisher: "Editorial Suma", Available: true, Rating: 4.2, Price: 13.60},
		{ID: 9, Title: "Outlander", Author: "Diana Gabaldon", Category: "Romance", Year: 1991, ISBN: "978-84-376-0009-0", Pages: 850, Language: "Español", Publisher: "Editorial Salamandra", Available: false, Rating: 4.1, Price: 15.90},
		{ID: 10, Title: "Sapiens", Author: "Yuval Noah Harari", Category: "Historia", Year: 2011, ISBN: "978-84-376-0010-6", Pages: 443, Language: "Español", Publisher: "Editorial Debate", Available: true, Rating: 4.7, Price: 21.90},
		{ID: 11, Title: "The Pillars of the Earth", Author: "Ken Follett", Category: "Historia", Year: 1989, ISBN: "978-84-376-0011-3", Pages: 973, Language: "Español", Publisher: "Plaza & Janés", Available: true, Rating: 4.5, Price: 20.00},
		{ID: 12, Title: "Steve Jobs", Author: "Walter Isaacson", Category: "Biografías", Year: 2011, ISBN: "978-84-376-0012-0", Pages: 656, Language: "Español", Publisher: "Editorial Debate", Available: true, Rating: 4.3, Price: 22.50},
		{ID: 13, Title: "Leonardo da Vinci", Author: "Walter Isaacson", Category: "Biografías", Year: 2017, ISBN: "978-84-376-0013-7", Pages: 600, Language: "Español", Publisher: "Editorial Debate", Available: true, Rating: 4.4, Price: 23.95},
		{ID: 14, Title: "The Art of War", Author: "Sun Tzu", Category: "Ensayos", Year: 1910, ISBN: "978-84-376-0014-4", Pages: 112, Language: "Inglés", Publisher: "Luzac & Co", Available: true, Rating: 4.2, Price: 8.99},
		{ID: 15, Title: "Letters to a Young Poet", Author: "Rainer Maria Rilke", Category: "Ensayos", Year: 1929, ISBN: "978-84-376-0015-1", Pages: 96, Language: "Español", Publisher: "Ediciones Hiperión", Available: true, Rating: 4.5, Price: 9.50},
		{ID: 16, Title: "Twenty Love Poems and a Song of Despair", Author: "Pablo Neruda", Category: "Poesía", Year: 1924, ISBN: "978-84-376-0016-8", Pages: 80, Language: "Español", Publisher: "Editorial Nascimento", Available: true, Rating: 4.6, Price: 10.25},
		{ID: 17, Title: "Leaves of Grass", Author: "Walt Whitman", Category: "Poesía", Year: 1855, ISBN: "978-84-376-0017-5", Pages: 144, Language: "Inglés", Publisher: "Self-published", Available: true, Rating: 4.4, Price: 12.75},
	}
}
