package memory

import (
	"github.com/xiebiao/bookreview/internal/domain/book"
)

// SeedBooks 返回启动时载入的固定种子目录
// 键"1".."10"即ISBN，与原始数据保持一致
func SeedBooks() []*book.Book {
	return []*book.Book{
		book.NewBook("1", "Chinua Achebe", "Things Fall Apart"),
		book.NewBook("2", "Hans Christian Andersen", "Fairy tales"),
		book.NewBook("3", "Dante Alighieri", "The Divine Comedy"),
		book.NewBook("4", "Unknown", "The Epic Of Gilgamesh"),
		book.NewBook("5", "Unknown", "The Book Of Job"),
		book.NewBook("6", "Unknown", "One Thousand and One Nights"),
		book.NewBook("7", "Unknown", "Njál's Saga"),
		book.NewBook("8", "Jane Austen", "Pride and Prejudice"),
		book.NewBook("9", "Honoré de Balzac", "Le Père Goriot"),
		book.NewBook("10", "Samuel Beckett", "Molloy, Malone Dies, The Unnamable, the trilogy"),
	}
}
