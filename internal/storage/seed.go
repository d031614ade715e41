package storage

import "triphita/internal/models"

func strPtr(s string) *string { return &s }

// SeedPosts — три демонстрационных поста, которыми инициализируется
// пустой бэкенд. id и таймстемпы проставляет сам бэкенд.
func SeedPosts() []*models.BlogPost {
	return []*models.BlogPost{
		{
			Title:           "Поход по Доломитовым Альпам",
			Content:         "<p>Пять дней по тропам Альта-Виа: перевалы, рифуджо и закаты над Тре-Чиме. Делимся маршрутом и списком снаряжения.</p>",
			Excerpt:         strPtr("Маршрут, снаряжение и впечатления от треккинга в Доломитах"),
			Category:        strPtr("Путешествия"),
			Status:          models.StatusPublished,
			FeaturedImage:   strPtr("https://images.unsplash.com/photo-1551632811-561732d1e306"),
			MetaDescription: strPtr("Треккинг в Доломитовых Альпах: маршрут и советы"),
			Tags:            []string{"горы", "треккинг", "италия"},
		},
		{
			Title:           "Уличная еда Бангкока: что попробовать",
			Content:         "<p>Пад-тай с ночного рынка, том-ям в переулке у Каосан-роуд и манго-стики-райс на десерт. Гид по лучшим лоткам города.</p>",
			Excerpt:         strPtr("Гид по уличной еде Бангкока: от пад-тая до манго-стики-райс"),
			Category:        strPtr("Еда"),
			Status:          models.StatusDraft,
			FeaturedImage:   strPtr("https://images.unsplash.com/photo-1504674900247-0877df9cc836"),
			MetaDescription: strPtr("Лучшая уличная еда Бангкока"),
			Tags:            []string{"еда", "таиланд", "рынки"},
		},
		{
			Title:           "Музеи Флоренции без очередей",
			Content:         "<p>Уффици, Барджелло и капеллы Медичи: когда приходить, что бронировать заранее и какие залы нельзя пропустить.</p>",
			Excerpt:         strPtr("Как попасть в главные музеи Флоренции без многочасовых очередей"),
			Category:        strPtr("Культура"),
			Status:          models.StatusPublished,
			FeaturedImage:   strPtr("https://images.unsplash.com/photo-1541370976299-4d24ebbc9077"),
			MetaDescription: strPtr("Музеи Флоренции: практический гид"),
			Tags:            []string{"культура", "италия", "музеи"},
		},
	}
}
