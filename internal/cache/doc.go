// Package cache хранит локальный снимок реестра pipelines.
//
// Формат файла:
//
//	{
//	    "pipelines": [
//	        {
//	            "pipeline_id": "df-0123456789",
//	            "pipeline_name": "NightlyLoad",
//	            "parameterValues": [
//	                {"id": "startDate", "stringValue": ""}
//	            ]
//	        }
//	    ]
//	}
//
// Store — единственный компонент, который читает и пишет этот файл.
// Запись атомарна: файл либо полностью заменяется, либо остаётся прежним.
//
// Повреждённый файл — фатальная ошибка (ErrConfigFormat), а не пустой
// кэш: иначе испорченный файл выглядел бы как "pipelines не найдены".
// Чтобы пересобрать кэш, файл нужно исправить или удалить.
package cache
