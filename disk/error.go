package disk

import "fmt"

type InvalidPartitionError struct {
	requested int
}

func (e *InvalidPartitionError) Error() string {
	return fmt.Sprintf("requested partition %d not found, must be between 0 and 3", e.requested)
}

func NewInvalidPartitionError(requested int) *InvalidPartitionError {
	return &InvalidPartitionError{
		requested: requested,
	}
}

type EmptyPartitionError struct {
	partition int
}

func (e *EmptyPartitionError) Error() string {
	return fmt.Sprintf("partition %d is empty", e.partition)
}

func NewEmptyPartitionError(partition int) *EmptyPartitionError {
	return &EmptyPartitionError{
		partition: partition,
	}
}

type PartitionBeyondDiskError struct {
	partition int
	end       int64
	size      int64
}

func (e *PartitionBeyondDiskError) Error() string {
	return fmt.Sprintf("partition %d ends at byte %d, beyond the end of the disk at %d", e.partition, e.end, e.size)
}

func NewPartitionBeyondDiskError(partition int, end, size int64) *PartitionBeyondDiskError {
	return &PartitionBeyondDiskError{
		partition: partition,
		end:       end,
		size:      size,
	}
}
